package reuse

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/reusesim/insts"
)

// Hook positions invoked by the Unit after each buffer operation.
var (
	// HookPosLookup marks a completed lookup. The item is an Access.
	HookPosLookup = &sim.HookPos{Name: "ReuseLookup"}
	// HookPosInsert marks a completed insertion. The item is an Access.
	HookPosInsert = &sim.HookPos{Name: "ReuseInsert"}
	// HookPosEvict marks the eviction that precedes an insertion into a
	// full buffer. The item is the evicted Entry.
	HookPosEvict = &sim.HookPos{Name: "ReuseEvict"}
)

// Access describes one lookup or insertion for hooks.
type Access struct {
	PC       uint64
	Class    insts.OpClass
	Operands []uint64
	Results  []uint64
	Hit      bool
}

// Statistics holds reuse unit statistics.
type Statistics struct {
	// Lookups is the number of reusable instructions checked against the buffer.
	Lookups uint64
	// Hits is the number of lookups that found a matching entry.
	Hits uint64
	// Misses is the number of lookups that found no matching entry.
	Misses uint64
	// ReusedInt is the number of reused integer instructions.
	ReusedInt uint64
	// ReusedFloat is the number of reused floating-point instructions.
	ReusedFloat uint64
	// Bypassed is the number of instructions whose class is never reused.
	Bypassed uint64
	// Inserts is the number of entries written into the buffer.
	Inserts uint64
	// Evictions is the number of entries removed to make room.
	Evictions uint64
	// Skipped is the number of completed reusable instructions not recorded
	// because they have no operands or too many results.
	Skipped uint64
}

// HitRate returns the lookup hit rate as a percentage.
func (s Statistics) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups) * 100
}

// Reused returns the total number of reused instructions.
func (s Statistics) Reused() uint64 {
	return s.ReusedInt + s.ReusedFloat
}

// Unit connects a pipeline stage to its reuse buffer. It decides which
// instructions take part in reuse, keeps statistics, and invokes hooks after
// each buffer operation so observers stay off the buffer's lookup path.
type Unit struct {
	*sim.HookableBase

	config Config
	buffer *Buffer
	stats  Statistics
}

// NewUnit creates a reuse unit that owns a new buffer built from config.
// It panics if the configuration is invalid.
func NewUnit(config Config) *Unit {
	if err := config.Validate(); err != nil {
		panic("reuse: " + err.Error())
	}

	return &Unit{
		HookableBase: sim.NewHookableBase(),
		config:       config,
		buffer:       New(config.Capacity),
	}
}

// Name returns the name used to identify the unit in traces.
func (u *Unit) Name() string {
	return "ReuseUnit"
}

// Config returns the unit configuration.
func (u *Unit) Config() Config {
	return u.config
}

// Buffer returns the buffer owned by the unit.
func (u *Unit) Buffer() *Buffer {
	return u.buffer
}

// Stats returns reuse statistics.
func (u *Unit) Stats() Statistics {
	return u.stats
}

// ResetStats clears reuse statistics. Buffer contents are kept.
func (u *Unit) ResetStats() {
	u.stats = Statistics{}
}

// Lookup checks whether the results of inst can be reused. It returns the
// stored results and true on a hit. Instructions whose class is not
// reusable always miss and are not counted as lookups.
func (u *Unit) Lookup(inst *insts.Instruction) ([]uint64, bool) {
	if !inst.Class.Reusable() {
		u.stats.Bypassed++
		return nil, false
	}

	u.stats.Lookups++

	var results []uint64
	hit := u.buffer.Contains(inst.PC, inst.Operands)
	if hit {
		results = u.buffer.Results(inst.PC, inst.Operands)
		u.stats.Hits++
		if inst.Class.IsFloat() {
			u.stats.ReusedFloat++
		} else {
			u.stats.ReusedInt++
		}
	} else {
		u.stats.Misses++
	}

	if u.NumHooks() > 0 {
		u.InvokeHook(sim.HookCtx{
			Domain: u,
			Pos:    HookPosLookup,
			Item: Access{
				PC:       inst.PC,
				Class:    inst.Class,
				Operands: inst.Operands,
				Results:  results,
				Hit:      hit,
			},
		})
	}

	return results, hit
}

// Record stores the results of a completed instruction. Instructions that
// cannot be reused, have no operands, or produce more than MaxResults
// values are not stored.
func (u *Unit) Record(inst *insts.Instruction) {
	if !inst.Class.Reusable() {
		return
	}

	if len(inst.Operands) == 0 || len(inst.Results) > u.config.MaxResults {
		u.stats.Skipped++
		return
	}

	if u.buffer.Len() == u.buffer.Capacity() {
		u.stats.Evictions++
		if u.NumHooks() > 0 {
			victim, _ := u.buffer.Oldest()
			u.InvokeHook(sim.HookCtx{
				Domain: u,
				Pos:    HookPosEvict,
				Item:   victim,
			})
		}
	}

	u.buffer.Insert(inst.PC, inst.Operands, inst.Results)
	u.stats.Inserts++

	if u.NumHooks() > 0 {
		u.InvokeHook(sim.HookCtx{
			Domain: u,
			Pos:    HookPosInsert,
			Item: Access{
				PC:       inst.PC,
				Class:    inst.Class,
				Operands: inst.Operands,
				Results:  inst.Results,
			},
		})
	}
}
