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

package ocbsim_main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanetsim/ocb-ns/cli/runcli"
	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/progctx"
)

const testScenario = `
seed: 7
log: warn
radios:
  - id: 1
  - id: 2
links:
  - from: 1
    to: 2
    loss: 70
`

const testScript = `# two radios, one frame
send 1 2 ds 64
go 10ms
counters 2
kpi save
`

func writeFile(t *testing.T, dir, name, content string) string {
	fn := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(fn, []byte(content), 0644))
	return fn
}

func runMain(t *testing.T, argv ...string) (string, error) {
	out, err := os.CreateTemp(t.TempDir(), "stdout")
	require.Nil(t, err)
	defer out.Close()

	ctx := progctx.New(context.Background())
	err = Main(ctx, &runcli.CliOptions{Stdout: out}, argv)
	assert.NotNil(t, ctx.Err())

	data, rerr := os.ReadFile(out.Name())
	require.Nil(t, rerr)
	return string(data), err
}

func TestMain_Script(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "scenario.yaml", testScenario)
	script := writeFile(t, dir, "run.cli", testScript)

	logFile := filepath.Join(dir, "ocbsim.log")
	t.Cleanup(func() {
		_ = logger.SetOutput([]string{"stderr"})
	})

	output, err := runMain(t, "--config", cfg, "--script", script, "--output", dir, "--echo", "--log-file", logFile)
	require.Nil(t, err)
	assert.Contains(t, output, "> go 10ms\nDone\n")
	assert.Contains(t, output, "app.rx ")
	assert.Equal(t, 0, strings.Count(output, "Error:"))

	_, err = os.Stat(filepath.Join(dir, "kpi.json"))
	assert.Nil(t, err)
	_, err = os.Stat(logFile)
	assert.Nil(t, err)
}

func TestMain_ScriptExit(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "run.cli", "add\nexit\nadd\n")

	output, err := runMain(t, "-s", script)
	require.Nil(t, err)
	assert.Equal(t, "1\nDone\nDone\n", output)
}

func TestMain_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := runMain(t, "--config", filepath.Join(dir, "missing.yaml"))
	assert.NotNil(t, err)

	_, err = runMain(t, "--log", "loud")
	assert.NotNil(t, err)

	_, err = runMain(t, "--script", filepath.Join(dir, "missing.cli"))
	assert.NotNil(t, err)

	_, err = runMain(t, "extra-arg")
	assert.NotNil(t, err)
}
