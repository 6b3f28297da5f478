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

package ocbsim_main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vanetsim/ocb-ns/cli"
	"github.com/vanetsim/ocb-ns/cli/runcli"
	"github.com/vanetsim/ocb-ns/logger"
	"github.com/vanetsim/ocb-ns/progctx"
	"github.com/vanetsim/ocb-ns/simulation"
)

type MainArgs struct {
	ConfigFile  string
	Seed        int64
	LogLevel    string
	LogFile     string
	OutputDir   string
	Script      string
	Interactive bool
	EchoInput   bool
	HistoryFile string
}

func newRootCmd(ctx *progctx.ProgCtx, cliOptions *runcli.CliOptions) *cobra.Command {
	args := &MainArgs{}
	cmd := &cobra.Command{
		Use:   "ocbsim",
		Short: "Discrete event simulator of 802.11p radios outside the context of a BSS.",
		Long: `ocbsim simulates IEEE 802.11p radios communicating outside the context of a BSS. ` +
			`Radios, links and traffic are set up from a YAML scenario file and controlled from the CLI.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(ctx, cmd, args, cliOptions)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.ConfigFile, "config", "c", "", "YAML scenario file")
	flags.Int64Var(&args.Seed, "seed", simulation.DefaultSeed, "random seed, overrides the scenario")
	flags.StringVar(&args.LogLevel, "log", "", "log level: micro, trace, debug, info, note, warn, error, off")
	flags.StringVar(&args.LogFile, "log-file", "", "also write the log to this file")
	flags.StringVarP(&args.OutputDir, "output", "o", "", "directory for KPI and energy output files")
	flags.StringVarP(&args.Script, "script", "s", "", "run the CLI commands of a script file")
	flags.BoolVarP(&args.Interactive, "interactive", "i", false, "keep the CLI open after the script")
	flags.BoolVar(&args.EchoInput, "echo", false, "echo commands read from input")
	flags.StringVar(&args.HistoryFile, "history", "", "file to keep the CLI history in")
	return cmd
}

// Main runs the simulator with command line arguments argv, until the CLI exits or a signal arrives.
func Main(ctx *progctx.ProgCtx, cliOptions *runcli.CliOptions, argv []string) error {
	cmd := newRootCmd(ctx, cliOptions)
	cmd.SetArgs(argv)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		ctx.Cancel(err)
	}
	return err
}

func createSimulation(cmd *cobra.Command, args *MainArgs) (*simulation.Simulation, error) {
	var err error
	simcfg := simulation.DefaultConfig()
	if args.ConfigFile != "" {
		if simcfg, err = simulation.LoadConfig(args.ConfigFile); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("seed") {
		simcfg.Seed = args.Seed
	}
	if args.LogLevel != "" {
		if simcfg.LogLevel, err = logger.ParseLevelString(args.LogLevel); err != nil {
			return nil, err
		}
	}
	if args.OutputDir != "" {
		simcfg.OutputDir = args.OutputDir
	}
	return simulation.NewSimulation(simcfg)
}

func run(ctx *progctx.ProgCtx, cmd *cobra.Command, args *MainArgs, cliOptions *runcli.CliOptions) error {
	if cliOptions == nil {
		cliOptions = runcli.DefaultCliOptions()
	}
	cliOptions.EchoInput = cliOptions.EchoInput || args.EchoInput
	if args.HistoryFile != "" {
		cliOptions.HistoryFile = args.HistoryFile
	}

	if args.LogFile != "" {
		if err := logger.SetOutput([]string{"stderr", args.LogFile}); err != nil {
			return errors.Wrapf(err, "could not open log file")
		}
	}
	defer logger.Flush()

	sim, err := createSimulation(cmd, args)
	if err != nil {
		return err
	}
	rt := cli.NewCmdRunner(ctx, sim)

	handleSignals(ctx)

	if args.Script != "" {
		if err = runScript(ctx, rt, args.Script, cliOptions); err != nil {
			ctx.Cancel(err)
			ctx.Wait()
			_ = sim.Close()
			return err
		}
		if !args.Interactive {
			ctx.Cancel("script done")
		}
	}

	if ctx.Err() == nil {
		stdin := cliOptions.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		// a cancelled program must not stay blocked reading the console.
		ctx.Defer(func() {
			_ = stdin.Close()
		})
		logger.SetOutputCallback(runcli.RestorePrompt)
		err = runcli.RunCli(rt, cliOptions)
		logger.SetOutputCallback(nil)
		ctx.Cancel(errors.Wrapf(err, "console exit"))
	}

	logger.Debugf("waiting for ocbsim to stop gracefully ...")
	ctx.Wait()
	if cerr := sim.Close(); err == nil {
		err = cerr
	}
	return err
}

func runScript(ctx *progctx.ProgCtx, rt *cli.CmdRunner, path string, cliOptions *runcli.CliOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "could not open script")
	}
	defer f.Close()

	var output io.Writer = os.Stdout
	if cliOptions.Stdout != nil {
		output = cliOptions.Stdout
	}
	err = runcli.RunScript(rt, f, output, cliOptions.EchoInput)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// the script ended with 'exit'.
		return nil
	}
	return err
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)

	ctx.WaitAdd("handleSignals", 1)
	go func() {
		defer logger.Debugf("handleSignals exit.")
		defer ctx.WaitDone("handleSignals")
		defer signal.Stop(c)

		for {
			select {
			case sig := <-c:
				logger.Infof("signal received: %v", sig)
				ctx.Cancel(nil)
			case <-ctx.Done():
				return
			}
		}
	}()
}
