// Copyright (c) 2022-2024, The OTNS Authors.
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
	"github.com/pkg/errors"
)

const (
	OffLevelString     = "off"
	NoneLevelString    = "none"
	DefaultLevelString = "default"
)

// levelNames are the canonical names, as printed by the 'log' command and written to YAML.
var levelNames = map[Level]string{
	MicroLevel: "micro",
	TraceLevel: "trace",
	DebugLevel: "debug",
	InfoLevel:  "info",
	NoteLevel:  "note",
	WarnLevel:  "warn",
	ErrorLevel: "crit",
	PanicLevel: "panic",
	FatalLevel: "fatal",
	OffLevel:   OffLevelString,
}

// levelAliases are accepted by ParseLevelString next to the canonical names.
var levelAliases = map[string]Level{
	"T": TraceLevel, "D": DebugLevel, "I": InfoLevel, "N": NoteLevel, "W": WarnLevel,
	"warning": WarnLevel, "critical": ErrorLevel, "error": ErrorLevel, "err": ErrorLevel,
	"C": ErrorLevel, "E": ErrorLevel,
	NoneLevelString: OffLevel, DefaultLevelString: DefaultLevel, "def": DefaultLevel, "": DefaultLevel,
}

var levelsByName = func() map[string]Level {
	m := make(map[string]Level, len(levelNames)+len(levelAliases))
	for lv, name := range levelNames {
		if lv >= ErrorLevel || lv == OffLevel {
			m[name] = lv
		}
	}
	for name, lv := range levelAliases {
		m[name] = lv
	}
	return m
}()

// ParseLevelString parses a level name, or a one-letter abbreviation of it. The panic and fatal
// levels cannot be selected.
func ParseLevelString(level string) (Level, error) {
	if lv, ok := levelsByName[level]; ok {
		return lv, nil
	}
	return DefaultLevel, errors.Errorf("invalid log level string: %s", level)
}

func GetLevelString(level Level) string {
	name, ok := levelNames[level]
	if !ok {
		Panicf("Unknown Level: %d", level)
	}
	return name
}

func (l Level) String() string {
	return GetLevelString(l)
}

// UnmarshalYAML lets a Level be written by name in YAML configuration.
func (l *Level) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	lv, err := ParseLevelString(s)
	if err != nil {
		return err
	}
	*l = lv
	return nil
}

func (l Level) MarshalYAML() (interface{}, error) {
	return GetLevelString(l), nil
}
