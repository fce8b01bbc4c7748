// Package core provides a trace-driven CPU core model with instruction reuse.
// It replays completed instructions one at a time, consults a reuse unit
// before execution, and accounts the cycles each instruction costs.
package core

import (
	"errors"
	"io"
	"slices"

	"github.com/sarchlab/reusesim/insts"
	"github.com/sarchlab/reusesim/timing/latency"
	"github.com/sarchlab/reusesim/timing/reuse"
	"github.com/sarchlab/reusesim/trace"
)

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Reused is the number of instructions whose results came from the
	// reuse buffer.
	Reused uint64
	// SavedCycles is the number of execution cycles avoided by reuse.
	SavedCycles uint64
	// Mismatches is the number of reused result lists that differ from the
	// results recorded in the trace.
	Mismatches uint64
}

// CPI returns the cycles per instruction.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// ReuseRate returns the fraction of retired instructions that were reused,
// as a percentage.
func (s Stats) ReuseRate() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Reused) / float64(s.Instructions) * 100
}

// Core represents a trace-driven CPU core with a reuse buffer.
type Core struct {
	unit         *reuse.Unit
	latencyTable *latency.Table

	cycle uint64
	stats Stats
}

// NewCore creates a new Core that owns the given reuse unit.
func NewCore(unit *reuse.Unit, table *latency.Table) *Core {
	return &Core{
		unit:         unit,
		latencyTable: table,
	}
}

// Unit returns the reuse unit.
func (c *Core) Unit() *reuse.Unit {
	return c.unit
}

// Cycle returns the current cycle.
func (c *Core) Cycle() uint64 {
	return c.cycle
}

// Step issues one instruction. A reuse hit completes in the reuse latency;
// otherwise the instruction takes its class latency and its results are
// recorded for later reuse.
func (c *Core) Step(inst *insts.Instruction) {
	var cost uint64

	results, hit := c.unit.Lookup(inst)
	if hit {
		cost = c.latencyTable.ReuseLatency()
		c.stats.Reused++
		c.stats.SavedCycles += c.latencyTable.SavedCycles(inst.Class)
		if !slices.Equal(results, inst.Results) {
			c.stats.Mismatches++
		}
	} else {
		cost = c.latencyTable.GetLatency(inst.Class)
		c.unit.Record(inst)
	}

	c.cycle += cost
	c.stats.Cycles = c.cycle
	c.stats.Instructions++
}

// RunAll replays every instruction in order.
func (c *Core) RunAll(all []*insts.Instruction) {
	for _, inst := range all {
		c.Step(inst)
	}
}

// Run replays instructions from r until the end of the trace.
func (c *Core) Run(r *trace.Reader) error {
	for {
		inst, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		c.Step(inst)
	}
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	return c.stats
}

// Reset clears the cycle counter and all statistics. The reuse buffer keeps
// its contents, so Reset separates a warm-up phase from measurement.
func (c *Core) Reset() {
	c.cycle = 0
	c.stats = Stats{}
	c.unit.ResetStats()
}
