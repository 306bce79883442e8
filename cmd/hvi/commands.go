package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezrec/hvi/config"
	"github.com/ezrec/hvi/runtime"
	"github.com/ezrec/hvi/script"
	"github.com/ezrec/hvi/sequencer"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command of the hvi tool.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hvi",
		Short: "Synchronized multi-engine sequence builder",
		Long: `Builds the time-aligned instruction sequences of several hardware engines
from a YAML system descriptor and a Starlark build script.`,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewGraphCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}

// build loads a descriptor and runs a build script over it.
func build(opts *RootOptions, descriptor string, source string) (prog *sequencer.Program, err error) {
	inf, err := os.Open(descriptor)
	if err != nil {
		return
	}
	defer inf.Close()

	sys, err := config.Load(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", descriptor, err)
		return
	}

	table, err := sys.Table()
	if err != nil {
		err = fmt.Errorf("%v: %w", descriptor, err)
		return
	}
	table.Verbose = opts.Verbose

	src, err := os.ReadFile(source)
	if err != nil {
		return
	}

	b := sequencer.NewBuilder(sys.Name, table)
	b.Verbose = opts.Verbose

	s := script.New(b, sys.Constants)
	s.Verbose = opts.Verbose
	err = s.Exec(source, src)
	if err != nil {
		return
	}

	prog, err = b.Build()
	return
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dump <descriptor.yaml> <script.star>",
		Short:        "Print the program tree",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := build(rootOpts, args[0], args[1])
			if err != nil {
				return err
			}
			return prog.Dump(cmd.OutOrStdout())
		},
	}

	return cmd
}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "graph <descriptor.yaml> <script.star>",
		Short:        "Print a Mermaid flowchart of the program blocks",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := build(rootOpts, args[0], args[1])
			if err != nil {
				return err
			}
			return prog.Mermaid(cmd.OutOrStdout())
		},
	}

	return cmd
}

// RunOptions holds flags for the run command.
type RunOptions struct {
	Timeout    time.Duration
	Iterations int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <descriptor.yaml> <script.star>",
		Short: "Run the program on the simulator",
		Long: `Compile, load and run the program on the in-process simulator, then print
the event trace and the final sequencer register values.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().DurationVarP(&opts.Timeout, "timeout", "t", runtime.NO_TIMEOUT, "run timeout (0 for none)")
	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", 0, "iteration limit of one loop (0 for default, -1 for none)")

	return cmd
}

func runRun(rootOpts *RootOptions, opts *RunOptions, descriptor string, source string, cmd *cobra.Command) (err error) {
	prog, err := build(rootOpts, descriptor, source)
	if err != nil {
		return
	}

	sim := runtime.NewSimulator()
	sim.Verbose = rootOpts.Verbose
	sim.IterationLimit = opts.Iterations

	art, err := sim.Compile(prog)
	if err != nil {
		return
	}

	err = sim.Load(art)
	if err != nil {
		return
	}
	defer sim.Release(art)

	err = sim.Run(context.Background(), art, opts.Timeout)
	if err != nil {
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "artifact %v\n", art.ID)
	for ev := range sim.Trace() {
		fmt.Fprintf(out, "%8d ns %v %q %v: %v\n", ev.Clock, ev.Engine, ev.Statement, ev.Kind, ev.Detail)
	}
	for eng := range prog.Table.Engines() {
		for _, id := range eng.Registers {
			reg := prog.Table.Register(id)
			value, err := sim.ReadRegister(eng.Name, reg.Name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%v.%v = %d\n", eng.Name, reg.Name, value)
		}
	}
	fmt.Fprintf(out, "done at %d ns\n", sim.Clock())

	return
}
