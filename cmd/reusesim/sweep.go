package main

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/reusesim/trace"
)

func newSweepCmd(opts *options, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep <trace.jsonl>",
		Short: "Replay a trace once per buffer capacity and compare",
		Long: `Replay the same trace through independent cores, one per capacity,
and print hits, evictions and saved cycles for each capacity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]

			capacities := v.GetIntSlice("capacities")
			if len(capacities) == 0 {
				return fmt.Errorf("no capacities given")
			}
			for _, c := range capacities {
				if c <= 0 {
					return fmt.Errorf("capacity must be > 0, got %d", c)
				}
			}
			capacities = slices.Clone(capacities)
			slices.Sort(capacities)
			capacities = slices.Compact(capacities)

			all, err := trace.Load(path)
			if err != nil {
				return err
			}

			points := make([]sweepPoint, len(capacities))

			var g errgroup.Group
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, capacity := range capacities {
				i, capacity := i, capacity
				g.Go(func() error {
					pointOpts := *opts
					pointOpts.reuseConfig = opts.reuseConfig.Clone()
					pointOpts.reuseConfig.Capacity = capacity

					c := newCore(&pointOpts)
					c.RunAll(all)

					points[i] = sweepPoint{
						capacity: capacity,
						stats:    c.Stats(),
						reuse:    c.Unit().Stats(),
					}
					opts.log.Debug().
						Int("capacity", capacity).
						Uint64("hits", points[i].reuse.Hits).
						Msg("sweep point done")
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			printSweep(opts.stdout, path, points)
			return nil
		},
	}

	cmd.Flags().IntSlice("capacities", []int{16, 64, 256, 1024}, "Buffer capacities to compare")

	return cmd
}
