// Copyright (c) 2023-2024, The OTNS Authors.
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
	"sync"

	"go.uber.org/zap"

	"github.com/vanetsim/ocb-ns/types"
)

// RadioLogger is a radio-specific log object. Its display level is set per individual radio
// and every line carries the radio name and the simulated time of the radio's clock as fields.
type RadioLogger struct {
	Id           types.NodeId
	displayLevel Level
	clock        func() types.SimTime
}

var (
	radioLogs = make(map[types.NodeId]*RadioLogger, 10)
	mutex     = sync.Mutex{}
)

// GetRadioLogger gets the RadioLogger instance for the given radio, creating it if needed.
// The clock supplies the simulated time; a nil clock keeps the previous one.
func GetRadioLogger(id types.NodeId, clock func() types.SimTime) *RadioLogger {
	mutex.Lock()
	defer mutex.Unlock()

	rl, ok := radioLogs[id]
	if !ok {
		rl = &RadioLogger{
			Id:           id,
			displayLevel: currentLevel,
		}
		radioLogs[id] = rl
	}
	if clock != nil {
		rl.clock = clock
	}
	return rl
}

// ForgetRadioLogger removes the radio's logger, e.g. when a simulation is torn down.
func ForgetRadioLogger(id types.NodeId) {
	mutex.Lock()
	defer mutex.Unlock()
	delete(radioLogs, id)
}

func (rl *RadioLogger) SetDisplayLevel(level Level) {
	rl.displayLevel = level
}

func (rl *RadioLogger) DisplayLevel() Level {
	return rl.displayLevel
}

func (rl *RadioLogger) Logf(level Level, format string, args []interface{}) {
	if level > rl.displayLevel && level > currentLevel {
		return
	}
	emitAt(level, getMessage(format, args), rl.clock, zap.String("radio", types.GetNodeName(rl.Id)))
}

func (rl *RadioLogger) Tracef(format string, args ...interface{}) {
	rl.Logf(TraceLevel, format, args)
}

func (rl *RadioLogger) Debugf(format string, args ...interface{}) {
	rl.Logf(DebugLevel, format, args)
}

func (rl *RadioLogger) Infof(format string, args ...interface{}) {
	rl.Logf(InfoLevel, format, args)
}

func (rl *RadioLogger) Warnf(format string, args ...interface{}) {
	rl.Logf(WarnLevel, format, args)
}

func (rl *RadioLogger) Errorf(format string, args ...interface{}) {
	rl.Logf(ErrorLevel, format, args)
}

func (rl *RadioLogger) Error(err error) {
	if err == nil {
		return
	}
	rl.Logf(ErrorLevel, "%v", []interface{}{err})
}

func (rl *RadioLogger) Panicf(format string, args ...interface{}) {
	rl.Logf(PanicLevel, format, args)
}
