// Package benchmarks provides synthetic instruction workloads for reuse
// buffer evaluation.
//
// Each workload generates a deterministic instruction trace that stresses a
// different source of redundancy: loop-invariant computation, speculative
// re-issue after a misprediction, or none at all.
package benchmarks

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sarchlab/reusesim/insts"
)

// Workload is a named synthetic trace generator.
type Workload struct {
	// Name identifies the workload.
	Name string

	// Description explains what kind of redundancy the workload exercises.
	Description string

	// Generate returns exactly n instructions.
	Generate func(n int) []*insts.Instruction
}

// GetWorkloads returns the standard set of workloads.
func GetWorkloads() []Workload {
	return []Workload{
		loopInvariant(),
		induction(),
		speculativeReissue(),
		streaming(),
		mixed(),
	}
}

// Lookup finds a workload by name.
func Lookup(name string) (Workload, error) {
	for _, w := range GetWorkloads() {
		if w.Name == name {
			return w, nil
		}
	}
	return Workload{}, fmt.Errorf("unknown workload %q", name)
}

// emitter collects instructions until a limit is reached.
type emitter struct {
	limit int
	out   []*insts.Instruction
}

func newEmitter(n int) *emitter {
	return &emitter{limit: n, out: make([]*insts.Instruction, 0, n)}
}

func (e *emitter) full() bool {
	return len(e.out) >= e.limit
}

func (e *emitter) emit(pc uint64, class insts.OpClass, ops []uint64, results ...uint64) {
	if e.full() {
		return
	}
	e.out = append(e.out, &insts.Instruction{
		PC:       pc,
		Class:    class,
		Operands: ops,
		Results:  results,
	})
}

// 1. Loop Invariant - the same computation on the same inputs every iteration
func loopInvariant() Workload {
	return Workload{
		Name:        "loop_invariant",
		Description: "4-instruction loop: 2 invariant ops, 1 induction update, 1 branch",
		Generate: func(n int) []*insts.Instruction {
			e := newEmitter(n)
			const base, limit = 0x1000, 1 << 20
			for i := uint64(0); !e.full(); i++ {
				e.emit(base, insts.OpClassIntALU, []uint64{7, 9}, 16)
				e.emit(base+4, insts.OpClassIntMul, []uint64{16, 3}, 48)
				e.emit(base+8, insts.OpClassIntALU, []uint64{i, 1}, i+1)
				e.emit(base+12, insts.OpClassBranch, []uint64{i + 1, limit})
			}
			return e.out
		},
	}
}

// 2. Induction - every operand depends on the loop counter
func induction() Workload {
	return Workload{
		Name:        "induction",
		Description: "loop where every arithmetic op consumes the induction variable",
		Generate: func(n int) []*insts.Instruction {
			e := newEmitter(n)
			const base = 0x2000
			for i := uint64(0); !e.full(); i++ {
				e.emit(base, insts.OpClassIntALU, []uint64{i, 8}, i+8)
				e.emit(base+4, insts.OpClassIntMul, []uint64{i + 8, 4}, (i+8)*4)
				e.emit(base+8, insts.OpClassIntALU, []uint64{i, 1}, i+1)
			}
			return e.out
		},
	}
}

// 3. Speculative Reissue - windows replayed after a branch misprediction
func speculativeReissue() Workload {
	return Workload{
		Name:        "speculative_reissue",
		Description: "8-instruction windows, each issued twice (mispredict then correct path)",
		Generate: func(n int) []*insts.Instruction {
			e := newEmitter(n)
			r := rand.New(rand.NewSource(0x5eed))
			const base, window = 0x3000, 8
			for !e.full() {
				block := make([]*insts.Instruction, 0, window)
				for k := uint64(0); k < window; k++ {
					a, b := r.Uint64()>>32, r.Uint64()>>32
					block = append(block, &insts.Instruction{
						PC:       base + 4*k,
						Class:    insts.OpClassIntALU,
						Operands: []uint64{a, b},
						Results:  []uint64{a + b},
					})
				}
				for pass := 0; pass < 2; pass++ {
					for _, inst := range block {
						e.emit(inst.PC, inst.Class, inst.Operands, inst.Results...)
					}
				}
			}
			return e.out
		},
	}
}

// 4. Streaming - fresh random operands for every instruction
func streaming() Workload {
	return Workload{
		Name:        "streaming",
		Description: "random operands on every instruction; no reuse is possible",
		Generate: func(n int) []*insts.Instruction {
			e := newEmitter(n)
			r := rand.New(rand.NewSource(0x57e4))
			const base = 0x4000
			for i := uint64(0); !e.full(); i++ {
				a, b := r.Uint64(), r.Uint64()
				e.emit(base+4*(i%16), insts.OpClassIntALU, []uint64{a, b}, a^b)
			}
			return e.out
		},
	}
}

// 5. Mixed - FP kernel with memory traffic and a two-result divide
func mixed() Workload {
	return Workload{
		Name:        "mixed",
		Description: "invariant FP scale, two-result divide, loads and stores",
		Generate: func(n int) []*insts.Instruction {
			e := newEmitter(n)
			const base, array = 0x5000, 0x80000
			scale := math.Float64bits(1.5)
			for i := uint64(0); !e.full(); i++ {
				addr := array + 8*(i%64)
				x := math.Float64bits(float64(i % 4))
				y := math.Float64bits(float64(i%4) * 1.5)
				e.emit(base, insts.OpClassLoad, []uint64{addr}, x)
				e.emit(base+4, insts.OpClassFloatMul, []uint64{x, scale}, y)
				e.emit(base+8, insts.OpClassIntDiv, []uint64{i % 8, 3}, (i%8)/3, (i%8)%3)
				e.emit(base+12, insts.OpClassStore, []uint64{addr, y})
				e.emit(base+16, insts.OpClassBranch, []uint64{i + 1, 1 << 20})
			}
			return e.out
		},
	}
}
