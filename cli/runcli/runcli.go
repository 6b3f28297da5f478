// Copyright (c) 2020-2023, The OTNS Authors.
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

// Package runcli runs the simulator console, either interactively on a terminal or from a script.
package runcli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

type CliHandler interface {
	HandleCommand(cmd string, output io.Writer) error
	GetPrompt() string
}

// CommandLister is implemented by handlers that offer tab completion of their command names.
type CommandLister interface {
	CommandNames() []string
}

type CliOptions struct {
	EchoInput   bool
	HistoryFile string
	Stdin       *os.File
	Stdout      *os.File
}

func DefaultCliOptions() *CliOptions {
	return &CliOptions{}
}

var (
	readlineInstance *readline.Instance
)

// RestorePrompt redraws the prompt and the current input line, e.g. after log output overwrote it.
func RestorePrompt() {
	if readlineInstance != nil {
		readlineInstance.Refresh()
	}
}

// commandOf returns the command in an input line, or false for a blank or comment line.
func commandOf(line string) (string, bool) {
	cmd := strings.TrimSpace(line)
	if len(cmd) == 0 || cmd[0] == '#' {
		return "", false
	}
	return cmd, true
}

// saveTerminalState returns a func restoring the current state of f, if f is a terminal.
func saveTerminalState(f *os.File) (func(), error) {
	fd := int(f.Fd())
	if !readline.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := readline.GetState(fd)
	if err != nil {
		return nil, err
	}
	return func() {
		_ = readline.Restore(fd, state)
	}, nil
}

func newCompleter(handler CliHandler) readline.AutoCompleter {
	lister, ok := handler.(CommandLister)
	if !ok {
		return nil
	}
	var items []readline.PrefixCompleterInterface
	for _, name := range lister.CommandNames() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// RunCli reads commands from the console until EOF, or ^C on an empty line.
func RunCli(handler CliHandler, options *CliOptions) error {
	if options == nil {
		options = DefaultCliOptions()
	}

	stdin := options.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	for _, f := range []*os.File{stdin, stdout} {
		restore, err := saveTerminalState(f)
		if err != nil {
			return err
		}
		defer restore()
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:            handler.GetPrompt(),
		HistoryFile:       options.HistoryFile,
		AutoComplete:      newCompleter(handler),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             stdin,
		Stdout:            stdout,
		FuncFilterInputRune: func(r rune) (rune, bool) {
			// block CtrlZ feature
			return r, r != readline.CharCtrlZ
		},
	})
	if err != nil {
		return err
	}
	readlineInstance = l
	defer func() {
		readlineInstance = nil
		_ = l.Close()
	}()

	for {
		l.SetPrompt(handler.GetPrompt())

		line, err := l.Readline()
		switch {
		case err == readline.ErrInterrupt:
			if len(line) == 0 {
				return nil
			}
			continue
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if options.EchoInput {
			if _, err := stdout.WriteString(line + "\n"); err != nil {
				return err
			}
		}

		cmd, ok := commandOf(line)
		if !ok {
			continue
		}
		if err = handler.HandleCommand(cmd, l.Stdout()); err != nil {
			return err
		}
		_ = stdout.Sync()
	}
}

// RunScript feeds the lines of a script to the handler. Empty lines and lines starting with '#' are
// skipped. With echo set, each command is written to output after the prompt, as if typed.
func RunScript(handler CliHandler, script io.Reader, output io.Writer, echo bool) error {
	scanner := bufio.NewScanner(script)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		cmd, ok := commandOf(scanner.Text())
		if !ok {
			continue
		}
		if echo {
			if _, err := io.WriteString(output, handler.GetPrompt()+cmd+"\n"); err != nil {
				return err
			}
		}
		if err := handler.HandleCommand(cmd, output); err != nil {
			return errors.Wrapf(err, "script line %d", lineNo)
		}
	}
	return scanner.Err()
}
