// Copyright (c) 2023, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanetsim/ocb-ns/types"
)

func TestParseLevelString(t *testing.T) {
	lv, err := ParseLevelString("debug")
	assert.Nil(t, err)
	assert.Equal(t, DebugLevel, lv)

	lv, err = ParseLevelString("none")
	assert.Nil(t, err)
	assert.Equal(t, OffLevel, lv)

	_, err = ParseLevelString("loud")
	assert.NotNil(t, err)

	for _, l := range []Level{MicroLevel, TraceLevel, DebugLevel, InfoLevel, NoteLevel, WarnLevel, ErrorLevel, OffLevel} {
		parsed, err := ParseLevelString(GetLevelString(l))
		assert.Nil(t, err)
		assert.Equal(t, l, parsed)
	}
}

func TestAssertPanics(t *testing.T) {
	assert.Panics(t, func() {
		AssertTrue(false, "must panic")
	})
	assert.NotPanics(t, func() {
		AssertEqual(1, 1)
	})
}

func TestRadioLogger(t *testing.T) {
	var now types.SimTime = 42
	rl := GetRadioLogger(7, func() types.SimTime { return now })
	assert.Equal(t, 7, rl.Id)
	assert.Equal(t, types.SimTime(42), rl.clock())
	assert.Same(t, rl, GetRadioLogger(7, nil))

	rl.SetDisplayLevel(OffLevel)
	assert.Equal(t, OffLevel, rl.DisplayLevel())
	assert.NotPanics(t, func() {
		rl.Debugf("not displayed %d", 1)
	})
	ForgetRadioLogger(7)
	assert.NotSame(t, rl, GetRadioLogger(7, nil))
	ForgetRadioLogger(7)
}

func TestSetOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "ocbsim.log")
	require.Nil(t, SetOutput([]string{logFile}))
	defer func() {
		_ = SetOutput([]string{"stderr"})
	}()

	SetLevel(InfoLevel)
	Infof("hello %s", "log")
	Debugf("not written")
	rl := GetRadioLogger(3, func() types.SimTime { return 1500 })
	defer ForgetRadioLogger(3)
	rl.Warnf("radio line")
	Flush()

	data, err := os.ReadFile(logFile)
	require.Nil(t, err)
	out := string(data)
	assert.Contains(t, out, "hello log")
	assert.NotContains(t, out, "not written")
	assert.Contains(t, out, "radio line")
	assert.Contains(t, out, `"sim": 1500`)
	assert.Contains(t, out, types.GetNodeName(3))

	assert.NotNil(t, SetOutput([]string{filepath.Join(t.TempDir(), "missing", "x.log")}))
}
