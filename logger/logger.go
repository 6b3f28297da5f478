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

// Package logger is the simulation-wide logger. Output goes through zap; lines logged by a radio carry
// the radio name and the simulated time as fields.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/vanetsim/ocb-ns/types"
)

// Level is the log-level for logging what happens in the simulation as a whole, or to watch an
// individual radio. Lower values are more severe.
type Level int8

const (
	MicroLevel   Level = 7
	TraceLevel   Level = 6
	DebugLevel   Level = 5
	InfoLevel    Level = 4
	NoteLevel    Level = 3
	WarnLevel    Level = 2
	ErrorLevel   Level = 1
	PanicLevel   Level = 0
	FatalLevel   Level = -1
	OffLevel     Level = -2
	MinLevel           = OffLevel
	DefaultLevel       = InfoLevel
)

const clearLine = "\033[2K\r"

var (
	cfg          zap.Config
	zaplogger    *zap.Logger
	currentLevel = DefaultLevel
	onTerminal   bool
	onOutput     func()

	// guards zaplogger replacement and the terminal line handling around each write.
	outputLock sync.Mutex

	zapLevels = [...]zapcore.Level{zapcore.FatalLevel + 1, zapcore.FatalLevel, zapcore.PanicLevel,
		zapcore.ErrorLevel, zapcore.WarnLevel, zapcore.InfoLevel, zapcore.InfoLevel, zapcore.DebugLevel,
		zapcore.DebugLevel, zapcore.DebugLevel}
)

var defaultCfgJson = []byte(`{
	"level": "debug",
	"outputPaths": ["stderr"],
	"errorOutputPaths": ["stderr"],
	"encoding": "console",
	"encoderConfig": {
		"messageKey": "message",
		"levelKey": "level",
		"timeKey": "time",
		"levelEncoder": "lowercase"
	}
}`)

func init() {
	onTerminal = term.IsTerminal(int(os.Stdout.Fd()))
	if err := json.Unmarshal(defaultCfgJson, &cfg); err != nil {
		panic(err)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	if err := build(); err != nil {
		panic(err)
	}
}

func build() error {
	newLogger, err := cfg.Build()
	if err != nil {
		return err
	}
	if zaplogger != nil {
		_ = zaplogger.Sync()
	}
	zaplogger = newLogger
	return nil
}

// SetLevel sets the log level
func SetLevel(lv Level) {
	currentLevel = lv
}

// GetLevel get the current log level
func GetLevel() Level {
	return currentLevel
}

// SetOutputCallback sets a function that is called after log content was written while a console runs
// on the terminal, e.g. to redraw its prompt.
func SetOutputCallback(cb func()) {
	outputLock.Lock()
	defer outputLock.Unlock()
	onOutput = cb
}

// SetOutput sets the output paths, e.g. logger.SetOutput([]string{"stderr", "ocbsim.log"})
func SetOutput(outputs []string) error {
	outputLock.Lock()
	defer outputLock.Unlock()
	prev := cfg.OutputPaths
	cfg.OutputPaths = outputs
	if err := build(); err != nil {
		cfg.OutputPaths = prev
		return err
	}
	return nil
}

// Flush writes out any buffered log entries.
func Flush() {
	outputLock.Lock()
	defer outputLock.Unlock()
	_ = zaplogger.Sync()
}

// TraceError prints the stack and error
func TraceError(format string, args ...interface{}) {
	Error(string(debug.Stack()))
	Errorf(format, args...)
}

// getMessage formats a string efficiently with Sprint, Sprintf, or neither.
func getMessage(template string, fmtArgs []interface{}) string {
	if len(fmtArgs) == 0 {
		return template
	}

	if template != "" {
		return fmt.Sprintf(template, fmtArgs...)
	}

	if len(fmtArgs) == 1 {
		if str, ok := fmtArgs[0].(string); ok {
			return str
		}
	}
	return fmt.Sprint(fmtArgs...)
}

// emit writes msg at level without checking the level. zap itself panics for PanicLevel and exits
// for FatalLevel.
func emit(level Level, msg string, fields ...zap.Field) {
	emitAt(level, msg, nil, fields...)
}

// emitAt is emit with the simulated time of clock added, if clock is not nil.
func emitAt(level Level, msg string, clock func() types.SimTime, fields ...zap.Field) {
	if cb := write(level, msg, clock, fields); onTerminal && cb != nil {
		cb()
	}
}

func write(level Level, msg string, clock func() types.SimTime, fields []zap.Field) func() {
	outputLock.Lock()
	defer outputLock.Unlock()

	if onTerminal {
		_, _ = fmt.Fprint(os.Stdout, clearLine)
	}
	if clock != nil {
		fields = append(fields, zap.Uint64("sim", uint64(clock())))
	}
	zaplogger.Log(zapLevels[level-MinLevel], msg, fields...)
	return onOutput
}

// Log outputs the log message/object at specified level using logger.
func Log(level Level, msg interface{}) {
	if level > currentLevel {
		return
	}
	emit(level, getMessage("", []interface{}{msg}))
}

// Logf outputs formatted log message at specified level using logger.
func Logf(level Level, format string, args []interface{}) {
	if level > currentLevel {
		return
	}
	emit(level, getMessage(format, args))
}

func Tracef(format string, args ...interface{}) {
	Logf(TraceLevel, format, args)
}

func Debugf(format string, args ...interface{}) {
	Logf(DebugLevel, format, args)
}

func Infof(format string, args ...interface{}) {
	Logf(InfoLevel, format, args)
}

func Warnf(format string, args ...interface{}) {
	Logf(WarnLevel, format, args)
}

func Errorf(format string, args ...interface{}) {
	Logf(ErrorLevel, format, args)
}

func Error(args ...interface{}) {
	Logf(ErrorLevel, "", args)
}

// Panicf logs the message and panics, regardless of the current level.
func Panicf(format string, args ...interface{}) {
	emit(PanicLevel, getMessage(format, args))
}

// Fatalf logs the message and exits, regardless of the current level.
func Fatalf(format string, args ...interface{}) {
	emit(FatalLevel, getMessage(format, args))
}

func Panic(args ...interface{}) {
	emit(PanicLevel, fmt.Sprint(args...))
}

func Fatal(args ...interface{}) {
	emit(FatalLevel, fmt.Sprint(args...))
}

func PanicIfError(err error, args ...interface{}) {
	if err == nil {
		return
	}
	if len(args) == 0 {
		args = []interface{}{err}
	}
	Panic(args...)
}

func PanicfIfError(err error, format string, args ...interface{}) {
	if err != nil {
		Panicf(format, args...)
	}
}

func FatalIfError(err error, args ...interface{}) {
	if err == nil {
		return
	}
	if len(args) == 0 {
		args = []interface{}{err}
	}
	Fatal(args...)
}

// assertLogger turns a failed testify assertion into a logged panic.
type assertLogger struct{}

func (assertLogger) Errorf(format string, args ...interface{}) {
	Panicf(format, args...)
}

func AssertEqual(expected, actual interface{}, msgAndArgs ...interface{}) bool {
	return assert.Equal(assertLogger{}, expected, actual, msgAndArgs...)
}

func AssertNil(object interface{}, msgAndArgs ...interface{}) bool {
	return assert.Nil(assertLogger{}, object, msgAndArgs...)
}

func AssertNotNil(object interface{}, msgAndArgs ...interface{}) bool {
	return assert.NotNil(assertLogger{}, object, msgAndArgs...)
}

func AssertTrue(value bool, msgAndArgs ...interface{}) bool {
	return assert.True(assertLogger{}, value, msgAndArgs...)
}

func AssertFalse(value bool, msgAndArgs ...interface{}) bool {
	return assert.False(assertLogger{}, value, msgAndArgs...)
}

func AssertTruef(value bool, msg string, args ...interface{}) bool {
	return assert.Truef(assertLogger{}, value, msg, args...)
}
