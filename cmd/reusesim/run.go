package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/reusesim/insts"
	"github.com/sarchlab/reusesim/timing/core"
	"github.com/sarchlab/reusesim/timing/latency"
	"github.com/sarchlab/reusesim/timing/reuse"
	"github.com/sarchlab/reusesim/trace"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		traceEvents bool
		dump        bool
		warmup      int
		cpuProfile  string
	)

	cmd := &cobra.Command{
		Use:   "run <trace.jsonl>",
		Short: "Replay a trace through one reuse buffer and print a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) (err error) {
			path := args[0]

			if cpuProfile != "" {
				stop, profErr := startCPUProfile(cpuProfile)
				if profErr != nil {
					return profErr
				}
				defer func() {
					if stopErr := stop(); stopErr != nil && err == nil {
						err = stopErr
					}
				}()
			}

			all, err := trace.Load(path)
			if err != nil {
				return err
			}
			opts.log.Debug().
				Str("trace", path).
				Int("instructions", len(all)).
				Int("capacity", opts.reuseConfig.Capacity).
				Msg("trace loaded")

			c := newCore(opts)
			if traceEvents {
				c.Unit().AcceptHook(reuse.NewTracer(opts.stderr, c))
			}

			start := time.Now()
			runWithWarmup(c, all, warmup)
			opts.log.Debug().Dur("elapsed", time.Since(start)).Msg("replay finished")

			printReport(opts.stdout, path, opts.reuseConfig.Capacity, c.Stats(), c.Unit().Stats())
			if dump {
				reuse.DumpEntries(opts.stdout, c.Unit().Buffer())
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&traceEvents, "trace", false, "Write every reuse event to stderr")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print resident buffer entries after the run")
	cmd.Flags().IntVar(&warmup, "warmup", 0, "Instructions replayed before statistics are collected")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "Write a CPU profile of the replay to file")

	return cmd
}

// newCore builds a core that owns a fresh reuse unit.
func newCore(opts *options) *core.Core {
	unit := reuse.NewUnit(*opts.reuseConfig)
	table := latency.NewTableWithConfig(opts.timingConfig)
	return core.NewCore(unit, table)
}

// runWithWarmup replays the first warmup instructions, clears statistics
// and replays the rest.
func runWithWarmup(c *core.Core, all []*insts.Instruction, warmup int) {
	warmup = min(max(warmup, 0), len(all))
	if warmup > 0 {
		c.RunAll(all[:warmup])
		c.Reset()
	}
	c.RunAll(all[warmup:])
}

// startCPUProfile starts CPU profiling into path and returns a function that
// stops it and closes the file.
func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create CPU profile: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to start CPU profile: %w", err)
	}

	return func() error {
		pprof.StopCPUProfile()
		return f.Close()
	}, nil
}
