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

package cli

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"

	"github.com/vanetsim/ocb-ns/logger"
)

//go:embed README.md
var cliHelpFile string

var (
	cmdHeaderPattern  = regexp.MustCompile("^### .+")
	linkTargetPattern = regexp.MustCompile(`\(#[a-z-]+\)`)
)

type helpEntry struct {
	short string
	lines []string
}

// Help holds the command reference parsed from the embedded README.md, one entry per '### cmd' header.
type Help struct {
	termWidth   uint
	maxCmdWidth uint
	commands    map[string]*helpEntry
}

func newHelp() Help {
	h := Help{
		termWidth: 80,
		commands:  make(map[string]*helpEntry),
	}
	h.parseHelpFile(cliHelpFile)
	h.update()
	return h
}

// update takes the current terminal width into account.
func (help *Help) update() {
	fdTerm := int(os.Stdout.Fd()) // Windows platform requires cast to int.
	if !term.IsTerminal(fdTerm) {
		return
	}
	width, _, err := term.GetSize(fdTerm)
	if err != nil {
		logger.Warnf("could not get terminal size: %v", err)
		return
	}
	help.termWidth = uint(width)
}

func (help *Help) sortedCommands() []string {
	cmds := make([]string, 0, len(help.commands))
	for k := range help.commands {
		cmds = append(cmds, k)
	}
	sort.Strings(cmds)
	return cmds
}

func (help *Help) outputGeneralHelp() string {
	var sb strings.Builder
	for _, c := range help.sortedCommands() {
		_, _ = fmt.Fprintf(&sb, "%-*s %s\n", int(help.maxCmdWidth), c, help.commands[c].short)
	}
	sb.WriteString(wordwrap.WrapString("\nFor detailed help per command, use: 'help <command>'\n", help.termWidth))
	return sb.String()
}

// outputCommandHelp shows the help of command, or of all commands starting with it.
func (help *Help) outputCommandHelp(command string) string {
	if _, ok := help.commands[command]; ok {
		return help.outputHelp([]string{command})
	}
	var similar []string
	for _, c := range help.sortedCommands() {
		if strings.HasPrefix(c, command) {
			similar = append(similar, c)
		}
	}
	if len(similar) == 0 {
		similar = []string{command}
	}
	return help.outputHelp(similar)
}

func (help *Help) outputHelp(commands []string) string {
	help.update()
	var sb strings.Builder
	width := help.termWidth - 2
	for _, cmd := range commands {
		entry, ok := help.commands[cmd]
		if !ok {
			sb.WriteString(cmd + "\n  (Non-existent command.)\n")
			continue
		}
		sb.WriteString(cmd + "\n")
		for _, line := range entry.lines {
			for _, wrapped := range strings.Split(wordwrap.WrapString(line, width), "\n") {
				sb.WriteString("  " + wrapped + "\n")
			}
		}
	}
	return sb.String()
}

// parseHelpFile reads the '### cmd' sections of md. Code blocks are rendered as indented examples, and
// a '## ' header ends the current command.
func (help *Help) parseHelpFile(md string) {
	var entry *helpEntry
	indent := ""
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case len(line) == 0:
			continue
		case strings.HasPrefix(line, "## "):
			entry = nil
			continue
		case cmdHeaderPattern.MatchString(line):
			name := strings.TrimSpace(line[strings.Index(line, " ")+1:])
			entry = &helpEntry{}
			help.commands[name] = entry
			if w := uint(len(name)); w > help.maxCmdWidth {
				help.maxCmdWidth = w
			}
			indent = ""
			continue
		}
		if entry == nil {
			continue
		}

		switch line {
		case "```bash":
			entry.lines = append(entry.lines, "", "Example:")
			indent = "  "
		case "```shell":
			entry.lines = append(entry.lines, "", "Definition:")
			indent = "  "
		case "```":
			indent = ""
		default:
			text := markdownUnquote(line)
			if entry.short == "" && indent == "" {
				entry.short = firstSentence(text)
			}
			entry.lines = append(entry.lines, indent+text)
		}
	}
}

func firstSentence(s string) string {
	if idx := strings.Index(s, "."); idx > 0 {
		return s[:idx+1]
	}
	return s
}

func markdownUnquote(md string) string {
	md = strings.ReplaceAll(md, "\\", "")
	md = linkTargetPattern.ReplaceAllString(md, "")
	return md
}
