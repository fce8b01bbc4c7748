package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/reusesim/benchmarks"
	"github.com/sarchlab/reusesim/trace"
)

func newGenCmd(opts *options) *cobra.Command {
	var (
		count  int
		output string
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "gen [workload]",
		Short: "Write a synthetic workload trace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				for _, w := range benchmarks.GetWorkloads() {
					fmt.Fprintf(opts.stdout, "%-20s %s\n", w.Name, w.Description)
				}
				return nil
			}

			if count <= 0 {
				return fmt.Errorf("instruction count must be > 0")
			}

			w, err := benchmarks.Lookup(args[0])
			if err != nil {
				return err
			}
			all := w.Generate(count)

			if output == "" {
				tw := trace.NewWriter(opts.stdout)
				for _, inst := range all {
					if err := tw.Write(inst); err != nil {
						return err
					}
				}
				return tw.Flush()
			}

			if err := trace.Save(output, all); err != nil {
				return err
			}
			opts.log.Info().
				Str("workload", w.Name).
				Int("instructions", len(all)).
				Str("path", output).
				Msg("trace written")
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10000, "Number of instructions to generate")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&list, "list", false, "List available workloads")

	return cmd
}
