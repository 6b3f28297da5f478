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

package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/progctx"
	"github.com/vanetsim/ocb-ns/simulation"
	. "github.com/vanetsim/ocb-ns/types"
)

func TestParseBytes(t *testing.T) {
	var cmd Command
	err := parseBytes([]byte("wrongcmd"), &cmd)
	assert.NotNil(t, err)

	assert.Nil(t, parseBytes([]byte("add"), &cmd))
	assert.True(t, cmd.Add != nil && cmd.Add.Id == nil && cmd.Add.Channel == nil)
	assert.Nil(t, parseBytes([]byte("add id 7 ch 172"), &cmd))
	assert.True(t, cmd.Add.Id.Val == 7 && cmd.Add.Channel.Val == 172)
	assert.Nil(t, parseBytes([]byte("add channel 174 id 3"), &cmd))
	assert.True(t, cmd.Add.Id.Val == 3 && cmd.Add.Channel.Val == 174)

	assert.True(t, parseBytes([]byte("busy 1 500"), &cmd) == nil && cmd.Busy.Duration == 500)
	assert.True(t, parseBytes([]byte("cancel 1"), &cmd) == nil && cmd.Cancel.Category == nil)
	assert.True(t, parseBytes([]byte("cancel 1 ac vi"), &cmd) == nil && cmd.Cancel.Category.Val == "vi")
	assert.True(t, parseBytes([]byte("counters"), &cmd) == nil && cmd.Counters != nil && cmd.Counters.Node == nil)
	assert.True(t, parseBytes([]byte("counters 2"), &cmd) == nil && cmd.Counters.Node.Id == 2)

	assert.True(t, parseBytes([]byte("del 1"), &cmd) == nil && len(cmd.Del.Nodes) == 1)
	assert.True(t, parseBytes([]byte("del 1 2"), &cmd) == nil && len(cmd.Del.Nodes) == 2)
	assert.NotNil(t, parseBytes([]byte("del"), &cmd))

	assert.Nil(t, parseBytes([]byte("edca 1 vo 3 7 2"), &cmd))
	assert.True(t, cmd.Edca.Category.Val == "vo" && cmd.Edca.CwMin == 3 && cmd.Edca.CwMax == 7 && cmd.Edca.Aifsn == 2)

	assert.True(t, parseBytes([]byte("energy"), &cmd) == nil && cmd.Energy != nil && cmd.Energy.Save == nil)
	assert.True(t, parseBytes([]byte("energy save \"run1\""), &cmd) == nil && cmd.Energy.Save != nil &&
		cmd.Energy.Name == "run1")
	assert.True(t, parseBytes([]byte("exit"), &cmd) == nil && cmd.Exit != nil)

	assert.True(t, parseBytes([]byte("go 1"), &cmd) == nil && cmd.Go.Time == "1")
	assert.True(t, parseBytes([]byte("go 10ms"), &cmd) == nil && cmd.Go.Time == "10ms")
	assert.True(t, parseBytes([]byte("go 1.5s"), &cmd) == nil && cmd.Go.Time == "1.5s")
	assert.True(t, parseBytes([]byte("go 250us"), &cmd) == nil && cmd.Go.Time == "250us")

	assert.True(t, parseBytes([]byte("help"), &cmd) == nil && cmd.Help.HelpTopic == "")
	assert.True(t, parseBytes([]byte("help send"), &cmd) == nil && cmd.Help.HelpTopic == "send")

	assert.True(t, parseBytes([]byte("kpi"), &cmd) == nil && cmd.Kpi.Operation == "")
	assert.True(t, parseBytes([]byte("kpi start"), &cmd) == nil && cmd.Kpi.Operation == "start")
	assert.True(t, parseBytes([]byte("kpi save \"k.json\""), &cmd) == nil && cmd.Kpi.Filename == "k.json")

	assert.True(t, parseBytes([]byte("link 1 2"), &cmd) == nil && cmd.Link.Loss == nil)
	assert.True(t, parseBytes([]byte("link 1 2 75.5"), &cmd) == nil && *cmd.Link.Loss == "75.5" &&
		cmd.Link.OneWay == nil)
	assert.True(t, parseBytes([]byte("link 1 2 80 oneway"), &cmd) == nil && cmd.Link.OneWay != nil)

	assert.True(t, parseBytes([]byte("log"), &cmd) == nil && cmd.LogLevel.Level == "")
	assert.True(t, parseBytes([]byte("log debug"), &cmd) == nil && cmd.LogLevel.Level == "debug")
	assert.True(t, parseBytes([]byte("metrics"), &cmd) == nil && cmd.Metrics != nil)
	assert.True(t, parseBytes([]byte("node 3"), &cmd) == nil && cmd.Node.Node.Id == 3)
	assert.True(t, parseBytes([]byte("radios"), &cmd) == nil && cmd.Radios != nil)
	assert.True(t, parseBytes([]byte("radio 1"), &cmd) == nil && cmd.Status != nil)
	assert.True(t, parseBytes([]byte("status 1"), &cmd) == nil && cmd.Status.Node.Id == 1)
	assert.True(t, parseBytes([]byte("reset 1"), &cmd) == nil && cmd.Reset != nil)
	assert.True(t, parseBytes([]byte("resume 1"), &cmd) == nil && cmd.Resume != nil)

	assert.True(t, parseBytes([]byte("schedule 1"), &cmd) == nil && cmd.Schedule.On == nil && cmd.Schedule.Off == nil)
	assert.True(t, parseBytes([]byte("schedule 1 on"), &cmd) == nil && cmd.Schedule.On != nil)
	assert.True(t, parseBytes([]byte("schedule 1 stop"), &cmd) == nil && cmd.Schedule.Off != nil)

	assert.Nil(t, parseBytes([]byte("send 1 2"), &cmd))
	assert.True(t, cmd.Send.Src.Id == 1 && *cmd.Send.Dst.Id == 2 && cmd.Send.DataSize == nil)
	assert.Nil(t, parseBytes([]byte("send 1 bcast ds 20 ac vo"), &cmd))
	assert.True(t, cmd.Send.Dst.Broadcast != nil && cmd.Send.DataSize.Val == 20 && cmd.Send.Category.Val == "vo")
	assert.Nil(t, parseBytes([]byte("send 1 \"02:00:00:00:00:02\" bk"), &cmd))
	assert.True(t, *cmd.Send.Dst.Address == "02:00:00:00:00:02" && cmd.Send.Category.Val == "bk")

	assert.Nil(t, parseBytes([]byte("signal 1 foreign -62.5 dur 300"), &cmd))
	assert.True(t, cmd.Signal.Tech == "foreign" && cmd.Signal.Power == "-62.5" && cmd.Signal.Duration.Val == 300)
	assert.Nil(t, parseBytes([]byte("signal 2 native -80 ds 50"), &cmd))
	assert.True(t, cmd.Signal.Power == "-80" && cmd.Signal.DataSize.Val == 50)

	assert.True(t, parseBytes([]byte("suspend 1"), &cmd) == nil && cmd.Suspend != nil)
	assert.Nil(t, parseBytes([]byte("switch 1 172 guard 4000"), &cmd))
	assert.True(t, cmd.Switch.Channel == 172 && cmd.Switch.Guard.Val == 4000)
	assert.True(t, parseBytes([]byte("time"), &cmd) == nil && cmd.Time != nil)

	assert.Nil(t, parseBytes([]byte("vendor 1 bcast oui 4096 \"hello\""), &cmd))
	assert.True(t, cmd.Vendor.Oui == 4096 && cmd.Vendor.Payload == "hello")
}

func TestContextNode(t *testing.T) {
	assert.True(t, isContextlessCommand("radios"))
	assert.True(t, isContextlessCommand("go 1"))
	assert.True(t, isContextlessCommand("!send 1 2"))
	assert.False(t, isContextlessCommand("send 2"))
	assert.False(t, isContextlessCommand("counters"))
	assert.Equal(t, "send 3 2 ds 10", insertContextNode("send 2 ds 10", 3))
	assert.Equal(t, "suspend 3", insertContextNode("suspend", 3))
}

func TestGetUniqueAndSorted(t *testing.T) {
	sel := getUniqueAndSorted([]NodeSelector{{Id: 3}, {Id: 1}, {Id: 3}, {Id: 2}})
	assert.Equal(t, []NodeSelector{{Id: 1}, {Id: 2}, {Id: 3}}, sel)
}

func newTestRunner(t *testing.T) (*CmdRunner, *progctx.ProgCtx) {
	sim, err := simulation.NewSimulation(simulation.DefaultConfig())
	require.Nil(t, err)
	ctx := progctx.New(context.Background())
	return NewCmdRunner(ctx, sim), ctx
}

func run(t *testing.T, rt *CmdRunner, cmd string) string {
	var buf bytes.Buffer
	require.Nil(t, rt.HandleCommand(cmd, &buf))
	return buf.String()
}

func counterLine(name string, val uint64) string {
	return fmt.Sprintf("%-40s %v\n", name, val)
}

func TestCmdRunner_AddSendGo(t *testing.T) {
	rt, _ := newTestRunner(t)

	assert.Equal(t, "1\nDone\n", run(t, rt, "add"))
	assert.Equal(t, "2\nDone\n", run(t, rt, "add"))
	assert.True(t, strings.HasPrefix(run(t, rt, "add id 2"), "Error:"))
	assert.Equal(t, "9\nDone\n", run(t, rt, "add id 9 ch 172"))

	out := run(t, rt, "send 1 2 ds 50 ac vo")
	assert.True(t, strings.HasSuffix(out, "Done\n"))
	assert.Equal(t, "Done\n", run(t, rt, "go 10ms"))
	assert.Equal(t, "10000\nDone\n", run(t, rt, "time"))

	assert.Contains(t, run(t, rt, "counters 2"), counterLine("app.rx", 1))
	assert.Contains(t, run(t, rt, "counters 1"), counterLine("mac.tx-done", 1))
	// radio 9 listens on another channel.
	assert.NotContains(t, run(t, rt, "counters 9"), "phy.rx.success")
	assert.Contains(t, run(t, rt, "counters"), counterLine("app.rx", 1))

	assert.True(t, strings.HasPrefix(run(t, rt, "send 7 1"), "Error:"))
	assert.True(t, strings.HasPrefix(run(t, rt, "send 1 \"zz\""), "Error:"))
	assert.True(t, strings.HasPrefix(run(t, rt, "go abc"), "Error:"))
	assert.True(t, strings.HasPrefix(run(t, rt, "bogus"), "Error:"))

	assert.Equal(t, 3, strings.Count(run(t, rt, "radios"), "- {id: "))
	assert.Contains(t, run(t, rt, "status 9"), "channel: 172")

	assert.Contains(t, run(t, rt, "del 9 42"), "Warn: node 42 not found")
	assert.Equal(t, 2, strings.Count(run(t, rt, "radios"), "- {id: "))
}

func TestCmdRunner_NodeContext(t *testing.T) {
	rt, ctx := newTestRunner(t)
	run(t, rt, "add")
	run(t, rt, "add")

	assert.True(t, strings.HasPrefix(run(t, rt, "node 5"), "Error:"))
	assert.Equal(t, "Done\n", run(t, rt, "node 2"))
	assert.Equal(t, "node 2> ", rt.GetPrompt())
	assert.Equal(t, 2, rt.GetContextNodeId())

	assert.Equal(t, "Done\n", run(t, rt, "suspend"))
	r2, err := rt.sim.Radio(2)
	require.Nil(t, err)
	assert.True(t, r2.Mac.ChannelState().Suspended)
	assert.Equal(t, "Done\n", run(t, rt, "resume"))
	assert.False(t, r2.Mac.ChannelState().Suspended)

	assert.Equal(t, "0\nDone\n", run(t, rt, "!time"))
	assert.Equal(t, "Done\n", run(t, rt, "busy 500"))
	assert.Equal(t, SimTime(500), r2.Mac.ChannelState().BusyUntil)

	assert.Equal(t, "Done\n", run(t, rt, "exit"))
	assert.Equal(t, Prompt, rt.GetPrompt())
	assert.Nil(t, ctx.Err())

	run(t, rt, "node 1")
	assert.Equal(t, "Done\n", run(t, rt, "node 0"))
	assert.Equal(t, InvalidNodeId, rt.GetContextNodeId())

	run(t, rt, "node 1")
	run(t, rt, "del 1")
	assert.Equal(t, InvalidNodeId, rt.GetContextNodeId())
}

func TestCmdRunner_Exit(t *testing.T) {
	rt, ctx := newTestRunner(t)
	var buf bytes.Buffer
	assert.Equal(t, context.Canceled, rt.HandleCommand("exit", &buf))
	assert.Equal(t, "Done\n", buf.String())
	assert.NotNil(t, ctx.Err())
	assert.Equal(t, "exit", ctx.Cause())

	buf.Reset()
	assert.NotNil(t, rt.HandleCommand("time", &buf))
	assert.Empty(t, buf.String())
}

func TestCmdRunner_MacControl(t *testing.T) {
	rt, _ := newTestRunner(t)
	run(t, rt, "add")

	assert.Equal(t, "off\nDone\n", run(t, rt, "schedule 1"))
	assert.Equal(t, "Done\n", run(t, rt, "schedule 1 on"))
	assert.Equal(t, "on\nDone\n", run(t, rt, "schedule 1"))
	assert.Equal(t, "Done\n", run(t, rt, "schedule 1 off"))

	assert.True(t, strings.HasPrefix(run(t, rt, "edca 1 vo 7 3 2"), "Error:"))
	assert.Equal(t, "Done\n", run(t, rt, "edca 1 vo 3 7 2"))

	assert.Equal(t, "Done\n", run(t, rt, "switch 1 172 guard 4000"))
	r1, err := rt.sim.Radio(1)
	require.Nil(t, err)
	assert.Equal(t, 172, r1.Phy.Channel())
	assert.Equal(t, SimTime(4000), r1.Mac.ChannelState().BusyUntil)

	assert.Equal(t, "Done\n", run(t, rt, "suspend 1"))
	run(t, rt, "send 1 bcast")
	run(t, rt, "send 1 bcast ac vo")
	assert.Equal(t, 1, r1.Mac.QueueLen(AcVO))
	assert.Equal(t, "Done\n", run(t, rt, "cancel 1 ac vo"))
	assert.Equal(t, "Done\n", run(t, rt, "reset 1"))
	assert.Equal(t, 0, r1.Mac.QueueLen(AcBE))
	assert.True(t, r1.Mac.ChannelState().Suspended)

	assert.Equal(t, "Done\n", run(t, rt, "vendor 1 bcast oui 4096 \"hi\""))
}

func TestCmdRunner_LinkAndSignal(t *testing.T) {
	rt, _ := newTestRunner(t)
	run(t, rt, "add")
	run(t, rt, "add")

	assert.Equal(t, "Done\n", run(t, rt, "link 1 2 75.5"))
	out := run(t, rt, "link 1 2")
	assert.Contains(t, out, "1 -> 2: 75.5 dB\n")
	assert.Contains(t, out, "2 -> 1: 75.5 dB\n")
	assert.Equal(t, "Done\n", run(t, rt, "link 1 2 90 oneway"))
	assert.Contains(t, run(t, rt, "link 2 1"), "1 -> 2: 90.0 dB\n")
	assert.True(t, strings.HasPrefix(run(t, rt, "link 1 1 50"), "Error:"))

	assert.True(t, strings.HasPrefix(run(t, rt, "signal 1 foreign -50"), "Error:"))
	assert.Equal(t, "Done\n", run(t, rt, "signal 1 foreign -50 dur 500"))
	run(t, rt, "go 1ms")
	assert.Contains(t, run(t, rt, "counters 1"), counterLine("phy.diag.foreign-above-cca", 1))
}

func TestCmdRunner_Output(t *testing.T) {
	rt, _ := newTestRunner(t)
	dir := t.TempDir()
	rt.sim.GetConfig().OutputDir = dir
	run(t, rt, "add")
	run(t, rt, "add")

	assert.Equal(t, "Done\n", run(t, rt, "kpi start"))
	run(t, rt, "send 1 2")
	run(t, rt, "go 1")
	assert.Equal(t, "Done\n", run(t, rt, "kpi stop"))
	assert.Contains(t, run(t, rt, "kpi"), "\"status\": \"ok\"")
	assert.Equal(t, "Done\n", run(t, rt, "kpi save"))
	_, err := os.Stat(filepath.Join(dir, "kpi.json"))
	assert.Nil(t, err)

	out := run(t, rt, "energy")
	assert.True(t, strings.HasPrefix(out, "1\t"))
	assert.Equal(t, "Done\n", run(t, rt, "energy save \"run\""))
	_, err = os.Stat(filepath.Join(dir, "energy_results", "run.txt"))
	assert.Nil(t, err)

	assert.Contains(t, run(t, rt, "metrics"), "phy_state_transitions_total")
}

func TestCmdRunner_LogAndHelp(t *testing.T) {
	rt, _ := newTestRunner(t)
	defer logger.SetLevel(logger.InfoLevel)

	assert.Equal(t, "info\nDone\n", run(t, rt, "log"))
	assert.Equal(t, "Done\n", run(t, rt, "log debug"))
	assert.Equal(t, "debug\nDone\n", run(t, rt, "log"))

	out := run(t, rt, "help")
	for _, cmd := range []string{"add", "go", "send", "signal", "switch"} {
		assert.Contains(t, out, cmd)
	}
	assert.Contains(t, run(t, rt, "help go"), "Run the simulation for a period of simulated time.")
	assert.Contains(t, run(t, rt, "help sus"), "Suspend channel access")
	assert.Contains(t, run(t, rt, "help nothing"), "(Non-existent command.)")

	names := rt.CommandNames()
	assert.Len(t, names, 27)
	assert.Equal(t, "add", names[0])
	assert.Contains(t, names, "radios")
	assert.Equal(t, "vendor", names[len(names)-1])
}

func TestHelp_ParseHelpFile(t *testing.T) {
	md := "# Title\n\nIntro text.\n\n## Commands\n\n### ping\n\nSend a ping. Waits for the answer.\n\n" +
		"```shell\nping <id>\n```\n\n### pong\n\nAnswer a \\[ping\\](#ping).\n\n## Other\n\nNot a command.\n"
	h := Help{termWidth: 80, commands: make(map[string]*helpEntry)}
	h.parseHelpFile(md)

	assert.Equal(t, []string{"ping", "pong"}, h.sortedCommands())
	assert.Equal(t, uint(4), h.maxCmdWidth)
	assert.Equal(t, "Send a ping.", h.commands["ping"].short)
	assert.Equal(t, []string{"Send a ping. Waits for the answer.", "", "Definition:", "  ping <id>"},
		h.commands["ping"].lines)
	assert.Equal(t, []string{"Answer a [ping]."}, h.commands["pong"].lines)

	assert.Equal(t, "ping Send a ping.\npong Answer a [ping].\n", strings.Split(h.outputGeneralHelp(), "\n\n")[0]+"\n")
	assert.Equal(t, "ping\n  Send a ping. Waits for the answer.\n  \n  Definition:\n    ping <id>\n", h.outputCommandHelp("ping"))
	assert.Contains(t, h.outputCommandHelp("p"), "pong\n")
}
