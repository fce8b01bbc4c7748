package main

import (
	"fmt"
	"io"

	"github.com/sarchlab/reusesim/timing/core"
	"github.com/sarchlab/reusesim/timing/reuse"
)

// printReport writes the run summary.
func printReport(w io.Writer, path string, capacity int, stats core.Stats, rs reuse.Statistics) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Trace: %s\n", path)
	fmt.Fprintf(w, "Reuse buffer entries: %d\n", capacity)
	fmt.Fprintf(w, "Total Instructions: %d\n", stats.Instructions)
	fmt.Fprintf(w, "Total Cycles: %d\n", stats.Cycles)
	fmt.Fprintf(w, "CPI: %.2f\n", stats.CPI())
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Reuse:\n")
	fmt.Fprintf(w, "  Lookups:       %d\n", rs.Lookups)
	fmt.Fprintf(w, "  Hits:          %d (%5.1f%%)\n", rs.Hits, rs.HitRate())
	fmt.Fprintf(w, "  Misses:        %d\n", rs.Misses)
	fmt.Fprintf(w, "  Reused int:    %d\n", rs.ReusedInt)
	fmt.Fprintf(w, "  Reused float:  %d\n", rs.ReusedFloat)
	fmt.Fprintf(w, "  Bypassed:      %d\n", rs.Bypassed)
	fmt.Fprintf(w, "  Inserts:       %d\n", rs.Inserts)
	fmt.Fprintf(w, "  Evictions:     %d\n", rs.Evictions)
	fmt.Fprintf(w, "  Skipped:       %d\n", rs.Skipped)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Saved cycles: %d\n", stats.SavedCycles)
	fmt.Fprintf(w, "Mismatches:   %d\n", stats.Mismatches)
}

// sweepPoint is the outcome of one capacity in a sweep.
type sweepPoint struct {
	capacity int
	stats    core.Stats
	reuse    reuse.Statistics
}

// printSweep writes one row per capacity.
func printSweep(w io.Writer, path string, points []sweepPoint) {
	fmt.Fprintf(w, "Trace: %s\n", path)
	fmt.Fprintf(w, "%10s %12s %10s %8s %10s %12s %8s\n",
		"entries", "instructions", "hits", "hit%", "evictions", "saved", "CPI")
	for _, p := range points {
		fmt.Fprintf(w, "%10d %12d %10d %7.1f%% %10d %12d %8.3f\n",
			p.capacity, p.stats.Instructions, p.reuse.Hits, p.reuse.HitRate(),
			p.reuse.Evictions, p.stats.SavedCycles, p.stats.CPI())
	}
}
