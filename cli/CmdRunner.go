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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/common/expfmt"
	"gopkg.in/yaml.v3"

	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/progctx"
	"github.com/vanetsim/ocb-ns/simulation"
	"github.com/vanetsim/ocb-ns/stats"
	. "github.com/vanetsim/ocb-ns/types"
)

const (
	Prompt = "> "

	defaultDataSize = 100
	// goStep is the largest slice of simulated time run without checking for interruption.
	goStep = Second
)

var (
	ErrCommandInterrupted = errors.New("command interrupted")
)

type CommandContext struct {
	context.Context
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

func (cc *CommandContext) Err() error {
	return cc.err
}

// outputItemsAsYaml writes a list with one flow-style line per item.
func (cc *CommandContext) outputItemsAsYaml(items interface{}) {
	var itemsYaml yaml.Node

	err := itemsYaml.Encode(items)
	logger.PanicIfError(err)

	for _, content := range itemsYaml.Content {
		content.Style = yaml.FlowStyle
	}

	data, err := yaml.Marshal(&itemsYaml)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

func (cc *CommandContext) outputYaml(v interface{}) {
	data, err := yaml.Marshal(v)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

// CmdRunner executes CLI commands against a simulation. Commands may arrive from several goroutines
// (the interactive CLI, a script, the signal handler); they are serialized on the simulation.
type CmdRunner struct {
	sim           *simulation.Simulation
	ctx           *progctx.ProgCtx
	simLock       sync.Mutex
	contextNodeId NodeId
	help          Help
}

func NewCmdRunner(ctx *progctx.ProgCtx, sim *simulation.Simulation) *CmdRunner {
	return &CmdRunner{
		ctx:           ctx,
		sim:           sim,
		contextNodeId: InvalidNodeId,
		help:          newHelp(),
	}
}

func (rt *CmdRunner) RunCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		// if character '!' is used to invoke no-node (global) context, remove it.
		if len(cmdline) > 1 && cmdline[0] == '!' {
			cmdline = cmdline[1:]
		}
		cmd := Command{}

		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

// HandleCommand runs a command line typed at the prompt. Inside a node context, radio commands
// apply to the context node, so "suspend" means "suspend <node>".
func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		if rt.contextNodeId != InvalidNodeId && !isContextlessCommand(cmdline) {
			cmdline = insertContextNode(cmdline, rt.contextNodeId)
		}
		return rt.RunCommand(cmdline, output)
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) GetPrompt() string {
	if rt.contextNodeId == InvalidNodeId {
		return Prompt
	} else {
		return fmt.Sprintf("node %d%s", rt.contextNodeId, Prompt)
	}
}

func (rt *CmdRunner) GetContextNodeId() NodeId {
	return rt.contextNodeId
}

// CommandNames lists the documented commands, for completion in the console.
func (rt *CmdRunner) CommandNames() []string {
	return rt.help.sortedCommands()
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Context: rt.ctx,
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Add != nil {
		rt.executeAddRadio(cc, cmd.Add)
	} else if cmd.Busy != nil {
		rt.executeBusy(cc, cmd.Busy)
	} else if cmd.Cancel != nil {
		rt.executeCancel(cc, cmd.Cancel)
	} else if cmd.Counters != nil {
		rt.executeCounters(cc, cmd.Counters)
	} else if cmd.Del != nil {
		rt.executeDelRadio(cc, cmd.Del)
	} else if cmd.Edca != nil {
		rt.executeEdca(cc, cmd.Edca)
	} else if cmd.Energy != nil {
		rt.executeEnergy(cc, cmd.Energy)
	} else if cmd.Exit != nil {
		rt.executeExit(cc, cmd.Exit)
	} else if cmd.Go != nil {
		rt.executeGo(cc, cmd.Go)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else if cmd.Kpi != nil {
		rt.executeKpi(cc, cmd.Kpi)
	} else if cmd.Link != nil {
		rt.executeLink(cc, cmd.Link)
	} else if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
	} else if cmd.Metrics != nil {
		rt.executeMetrics(cc, cmd.Metrics)
	} else if cmd.Node != nil {
		rt.executeNode(cc, cmd.Node)
	} else if cmd.Radios != nil {
		rt.executeRadios(cc, cmd.Radios)
	} else if cmd.Reset != nil {
		rt.executeReset(cc, cmd.Reset)
	} else if cmd.Resume != nil {
		rt.executeResume(cc, cmd.Resume)
	} else if cmd.Schedule != nil {
		rt.executeSchedule(cc, cmd.Schedule)
	} else if cmd.Send != nil {
		rt.executeSend(cc, cmd.Send)
	} else if cmd.Signal != nil {
		rt.executeSignal(cc, cmd.Signal)
	} else if cmd.Status != nil {
		rt.executeStatus(cc, cmd.Status)
	} else if cmd.Suspend != nil {
		rt.executeSuspend(cc, cmd.Suspend)
	} else if cmd.Switch != nil {
		rt.executeSwitch(cc, cmd.Switch)
	} else if cmd.Time != nil {
		rt.executeTime(cc, cmd.Time)
	} else if cmd.Vendor != nil {
		rt.executeVendor(cc, cmd.Vendor)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

// withSim runs f with exclusive access to the simulation, unless the program is exiting.
func (rt *CmdRunner) withSim(cc *CommandContext, f func(sim *simulation.Simulation)) {
	if rt.ctx.Err() != nil {
		cc.error(ErrCommandInterrupted)
		return
	}
	rt.simLock.Lock()
	defer rt.simLock.Unlock()
	f(rt.sim)
}

func (rt *CmdRunner) getRadio(cc *CommandContext, sim *simulation.Simulation, sel NodeSelector) *simulation.Radio {
	r, err := sim.Radio(sel.Id)
	if err != nil {
		cc.error(err)
		return nil
	}
	return r
}

func (rt *CmdRunner) enterNodeContext(nodeid NodeId) bool {
	logger.AssertTrue(nodeid == InvalidNodeId || nodeid > 0)
	if rt.contextNodeId == nodeid {
		return false
	}
	rt.contextNodeId = nodeid
	return true
}

func parseSimDuration(s string) (SimTime, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		d, err = time.ParseDuration(s + "s") // try parsing as seconds
		if err != nil {
			return 0, errors.Errorf("could not parse time duration: %s", s)
		}
	}
	if d < 0 {
		return 0, errors.Errorf("negative time duration: %s", s)
	}
	return SimTime(d / time.Microsecond), nil
}

func (rt *CmdRunner) executeGo(cc *CommandContext, cmd *GoCmd) {
	duration, err := parseSimDuration(cmd.Time)
	if err != nil {
		cc.error(err)
		return
	}
	// run in slices so that a long 'go' can be interrupted.
	for duration > 0 && cc.Err() == nil {
		step := duration
		if step > goStep {
			step = goStep
		}
		rt.withSim(cc, func(sim *simulation.Simulation) {
			sim.Go(step)
		})
		duration -= step
	}
}

func (rt *CmdRunner) executeAddRadio(cc *CommandContext, cmd *AddCmd) {
	logger.Debugf("Add: %#v", *cmd)
	rc := simulation.RadioConfig{}
	if cmd.Id != nil {
		rc.Id = cmd.Id.Val
	}
	if cmd.Channel != nil {
		rc.Channel = cmd.Channel.Val
	}

	rt.withSim(cc, func(sim *simulation.Simulation) {
		r, err := sim.AddRadio(rc)
		if err != nil {
			cc.error(err)
			return
		}
		cc.outputf("%d\n", r.Id)
	})
}

func (rt *CmdRunner) executeDelRadio(cc *CommandContext, cmd *DelCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		for _, sel := range getUniqueAndSorted(cmd.Nodes) {
			if err := sim.DeleteRadio(sel.Id); err != nil {
				if errors.Is(err, simulation.ErrRadioNotFound) {
					cc.outputf("Warn: node %d not found, skipping\n", sel.Id)
					continue
				}
				cc.errorf("node %d, %+v", sel.Id, err)
				continue
			}
			if sel.Id == rt.contextNodeId {
				rt.enterNodeContext(InvalidNodeId)
			}
		}
	})
}

func (ds *DestSelector) address() (Address, error) {
	if ds.Broadcast != nil {
		return BroadcastAddress, nil
	} else if ds.Address != nil {
		return ParseAddress(*ds.Address)
	} else if ds.Id != nil {
		return NodeAddress(*ds.Id), nil
	}
	return InvalidAddress, errors.Errorf("missing destination")
}

func accessCategory(flag *AccessCategoryFlag) (AccessCategory, error) {
	if flag == nil {
		return AcBE, nil
	}
	return ParseAccessCategory(flag.Val)
}

func (rt *CmdRunner) executeSend(cc *CommandContext, cmd *SendCmd) {
	dst, err := cmd.Dst.address()
	if err != nil {
		cc.error(err)
		return
	}
	ac, err := accessCategory(cmd.Category)
	if err != nil {
		cc.error(err)
		return
	}
	datasize := defaultDataSize
	if cmd.DataSize != nil {
		datasize = cmd.DataSize.Val
	}
	if datasize < 0 {
		cc.errorf("invalid datasize: %d", datasize)
		return
	}

	rt.withSim(cc, func(sim *simulation.Simulation) {
		f, err := sim.Send(cmd.Src.Id, dst, datasize, ac)
		if err != nil {
			cc.error(err)
			return
		}
		cc.outputf("%v\n", f)
	})
}

func (rt *CmdRunner) executeVendor(cc *CommandContext, cmd *VendorCmd) {
	dst, err := cmd.Dst.address()
	if err != nil {
		cc.error(err)
		return
	}
	if cmd.Oui < 0 || cmd.Oui > 0xffffff {
		cc.errorf("invalid OUI: %d", cmd.Oui)
		return
	}

	rt.withSim(cc, func(sim *simulation.Simulation) {
		if r := rt.getRadio(cc, sim, cmd.Src); r != nil {
			cc.error(r.Mac.SendVendorSpecific(dst, uint32(cmd.Oui), []byte(cmd.Payload)))
		}
	})
}

func (rt *CmdRunner) executeSignal(cc *CommandContext, cmd *SignalCmd) {
	power, err := strconv.ParseFloat(cmd.Power, 64)
	if err != nil {
		cc.errorf("invalid power: %s", cmd.Power)
		return
	}
	tech := TechNative
	if cmd.Tech == "foreign" {
		tech = TechForeign
	}
	var duration SimTime
	if cmd.Duration != nil {
		if cmd.Duration.Val <= 0 {
			cc.errorf("invalid duration: %d", cmd.Duration.Val)
			return
		}
		duration = SimTime(cmd.Duration.Val)
	}
	datasize := defaultDataSize
	if cmd.DataSize != nil {
		datasize = cmd.DataSize.Val
	}

	rt.withSim(cc, func(sim *simulation.Simulation) {
		cc.error(sim.InjectSignal(cmd.Node.Id, tech, power, duration, datasize))
	})
}

func (rt *CmdRunner) executeSuspend(cc *CommandContext, cmd *SuspendCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if r := rt.getRadio(cc, sim, cmd.Node); r != nil {
			r.Mac.Suspend()
		}
	})
}

func (rt *CmdRunner) executeResume(cc *CommandContext, cmd *ResumeCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if r := rt.getRadio(cc, sim, cmd.Node); r != nil {
			r.Mac.Resume()
		}
	})
}

func (rt *CmdRunner) executeBusy(cc *CommandContext, cmd *BusyCmd) {
	if cmd.Duration < 0 {
		cc.errorf("invalid duration: %d", cmd.Duration)
		return
	}
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if r := rt.getRadio(cc, sim, cmd.Node); r != nil {
			r.Mac.MakeVirtualBusy(SimTime(cmd.Duration))
		}
	})
}

func (rt *CmdRunner) executeCancel(cc *CommandContext, cmd *CancelCmd) {
	acs := AccessCategoriesByPriority[:]
	if cmd.Category != nil {
		ac, err := accessCategory(cmd.Category)
		if err != nil {
			cc.error(err)
			return
		}
		acs = []AccessCategory{ac}
	}
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if r := rt.getRadio(cc, sim, cmd.Node); r != nil {
			for _, ac := range acs {
				r.Mac.CancelTx(ac)
			}
		}
	})
}

func (rt *CmdRunner) executeReset(cc *CommandContext, cmd *ResetCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if r := rt.getRadio(cc, sim, cmd.Node); r != nil {
			r.Mac.Reset()
		}
	})
}

func (rt *CmdRunner) executeSwitch(cc *CommandContext, cmd *SwitchCmd) {
	var guard SimTime
	if cmd.Guard != nil {
		if cmd.Guard.Val < 0 {
			cc.errorf("invalid guard: %d", cmd.Guard.Val)
			return
		}
		guard = SimTime(cmd.Guard.Val)
	}
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if r := rt.getRadio(cc, sim, cmd.Node); r != nil {
			r.Mac.SwitchChannel(cmd.Channel, guard)
		}
	})
}

func (rt *CmdRunner) executeEdca(cc *CommandContext, cmd *EdcaCmd) {
	ac, err := ParseAccessCategory(cmd.Category.Val)
	if err != nil {
		cc.error(err)
		return
	}
	if cmd.CwMin < 0 || cmd.CwMax < 0 || cmd.Aifsn < 0 {
		cc.errorf("EDCA parameters must not be negative")
		return
	}
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if r := rt.getRadio(cc, sim, cmd.Node); r != nil {
			cc.error(r.Mac.ConfigureEdca(uint32(cmd.CwMin), uint32(cmd.CwMax), uint32(cmd.Aifsn), ac))
		}
	})
}

func (rt *CmdRunner) executeSchedule(cc *CommandContext, cmd *ScheduleCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		r := rt.getRadio(cc, sim, cmd.Node)
		if r == nil {
			return
		}
		if cmd.On != nil {
			r.Schedule.Start()
		} else if cmd.Off != nil {
			r.Schedule.Stop()
		} else if r.Schedule.IsRunning() {
			cc.outputf("on\n")
		} else {
			cc.outputf("off\n")
		}
	})
}

func (rt *CmdRunner) executeLink(cc *CommandContext, cmd *LinkCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		from, to := cmd.From.Id, cmd.To.Id
		if cmd.Loss == nil {
			cc.outputf("%d -> %d: %s dB\n", from, to, formatLoss(sim.Medium().LinkLoss(from, to)))
			cc.outputf("%d -> %d: %s dB\n", to, from, formatLoss(sim.Medium().LinkLoss(to, from)))
			return
		}
		if from == to {
			cc.errorf("link from node %d to itself", from)
			return
		}
		loss, err := strconv.ParseFloat(*cmd.Loss, 64)
		if err != nil {
			cc.errorf("invalid loss: %s", *cmd.Loss)
			return
		}
		sim.SetLinkLoss(from, to, loss)
		if cmd.OneWay == nil {
			sim.SetLinkLoss(to, from, loss)
		}
	})
}

func formatLoss(loss DbValue) string {
	if loss == simulation.NoLinkLossDb {
		return "inf"
	}
	return strconv.FormatFloat(loss, 'f', 1, 64)
}

func (rt *CmdRunner) executeStatus(cc *CommandContext, cmd *StatusCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if r := rt.getRadio(cc, sim, cmd.Node); r != nil {
			cc.outputYaml(r.Status())
		}
	})
}

func (rt *CmdRunner) executeRadios(cc *CommandContext, cmd *RadiosCmd) {
	var items []simulation.Status
	rt.withSim(cc, func(sim *simulation.Simulation) {
		sim.VisitRadiosInOrder(func(r *simulation.Radio) {
			items = append(items, r.Status())
		})
	})
	if len(items) > 0 {
		cc.outputItemsAsYaml(items)
	}
}

func (rt *CmdRunner) executeCounters(cc *CommandContext, cmd *CountersCmd) {
	counters := stats.RadioCounters{}
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if cmd.Node != nil {
			if r := rt.getRadio(cc, sim, *cmd.Node); r != nil {
				counters = r.Counters()
			}
			return
		}
		sim.VisitRadiosInOrder(func(r *simulation.Radio) {
			for k, v := range r.Counters() {
				counters[k] += v
			}
		})
	})

	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cc.outputf("%-40s %v\n", name, counters[name])
	}
}

func (rt *CmdRunner) executeKpi(cc *CommandContext, cmd *KpiCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		kpiMgr := sim.Kpi()
		switch cmd.Operation {
		case "start":
			kpiMgr.Start()
		case "stop":
			kpiMgr.Stop()
		case "save":
			fn := cmd.Filename
			if fn == "" {
				fn = filepath.Join(sim.GetConfig().OutputDir, "kpi.json")
			}
			cc.error(kpiMgr.SaveFile(fn))
		default:
			js, err := json.MarshalIndent(kpiMgr.Data(), "", "    ")
			if err != nil {
				cc.error(err)
				return
			}
			cc.outputf("%s\n", js)
		}
	})
}

func (rt *CmdRunner) executeEnergy(cc *CommandContext, cmd *EnergyCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if cmd.Save != nil {
			name := cmd.Name
			if name == "" {
				name = "energy"
			}
			cc.error(sim.GetEnergyAnalyser().SaveEnergyDataToFile(sim.GetConfig().OutputDir, name, sim.Now()))
			return
		}
		now := sim.Now()
		sim.VisitRadiosInOrder(func(r *simulation.Radio) {
			r.Energy.ComputeRadioState(now)
			e := r.Energy.Energy()
			cc.outputf("%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n", e.NodeId, e.Idle, e.CcaBusy, e.Rx, e.Tx, e.Total())
		})
	})
}

func (rt *CmdRunner) executeMetrics(cc *CommandContext, cmd *MetricsCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		mfs, err := sim.Gatherer().Gather()
		if err != nil {
			cc.error(err)
			return
		}
		for _, mf := range mfs {
			if _, err = expfmt.MetricFamilyToText(cc.output, mf); err != nil {
				cc.error(err)
				return
			}
		}
	})
}

func (rt *CmdRunner) executeNode(cc *CommandContext, cmd *NodeCmd) {
	rt.withSim(cc, func(sim *simulation.Simulation) {
		if _, err := sim.Radio(cmd.Node.Id); err != nil {
			if cmd.Node.Id == 0 && rt.contextNodeId != InvalidNodeId && rt.enterNodeContext(InvalidNodeId) {
				// the 'node 0' command will exit node context, only when inside a node-context.
				return
			}
			cc.error(err)
			return
		}
		rt.enterNodeContext(cmd.Node.Id)
	})
}

func (rt *CmdRunner) executeExit(cc *CommandContext, cmd *ExitCmd) {
	if rt.enterNodeContext(InvalidNodeId) {
		return
	}
	rt.ctx.Cancel("exit")
}

func (rt *CmdRunner) executeTime(cc *CommandContext, cmd *TimeCmd) {
	var now SimTime
	rt.withSim(cc, func(sim *simulation.Simulation) {
		now = sim.Now()
	})
	cc.outputf("%d\n", now)
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("%v\n", logger.GetLevelString(rt.sim.GetLogLevel()))
		return
	}
	level, err := logger.ParseLevelString(cmd.Level)
	if err != nil {
		cc.error(err)
		return
	}
	rt.sim.SetLogLevel(level)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) > 0 {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	} else {
		cc.outputStr(rt.help.outputGeneralHelp())
	}
}
