// Package latency provides instruction timing models for cycle-accurate simulation.
//
// The latency values are based on Apple M2 microarchitecture estimates and
// can be configured via TimingConfig.
package latency

import (
	"github.com/sarchlab/reusesim/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default M2 timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the execution latency in cycles for the given class.
// For variable-latency operations, returns the typical/expected latency.
func (t *Table) GetLatency(class insts.OpClass) uint64 {
	switch class {
	case insts.OpClassIntALU:
		return t.config.ALULatency
	case insts.OpClassIntMul:
		return t.config.MultiplyLatency
	case insts.OpClassIntDiv:
		return (t.config.DivideLatencyMin + t.config.DivideLatencyMax) / 2
	case insts.OpClassFloatAdd:
		return t.config.FPAddLatency
	case insts.OpClassFloatMul:
		return t.config.FPMulLatency
	case insts.OpClassFloatDiv:
		return t.config.FPDivLatency
	case insts.OpClassLoad:
		return t.config.LoadLatency
	case insts.OpClassStore:
		return t.config.StoreLatency
	case insts.OpClassBranch:
		return t.config.BranchLatency
	case insts.OpClassSyscall:
		return t.config.SyscallLatency
	default:
		return 1
	}
}

// GetMinLatency returns the minimum execution latency for variable-latency operations.
func (t *Table) GetMinLatency(class insts.OpClass) uint64 {
	if class == insts.OpClassIntDiv {
		return t.config.DivideLatencyMin
	}
	return t.GetLatency(class)
}

// GetMaxLatency returns the maximum execution latency for variable-latency operations.
func (t *Table) GetMaxLatency(class insts.OpClass) uint64 {
	if class == insts.OpClassIntDiv {
		return t.config.DivideLatencyMax
	}
	return t.GetLatency(class)
}

// ReuseLatency returns the cycles taken by an instruction whose results
// come from the reuse buffer.
func (t *Table) ReuseLatency() uint64 {
	return t.config.ReuseLatency
}

// SavedCycles returns how many cycles a reuse hit saves over executing an
// instruction of the given class. It is zero when reuse is not faster.
func (t *Table) SavedCycles(class insts.OpClass) uint64 {
	lat := t.GetLatency(class)
	if lat <= t.config.ReuseLatency {
		return 0
	}
	return lat - t.config.ReuseLatency
}

// IsMemoryOp returns true if the class accesses memory.
func (t *Table) IsMemoryOp(class insts.OpClass) bool {
	return class.IsMemory()
}

// IsBranchOp returns true if the class is a branch.
func (t *Table) IsBranchOp(class insts.OpClass) bool {
	return class == insts.OpClassBranch
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
