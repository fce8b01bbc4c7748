package reuse

import (
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/sim"
)

// Clock reports the current simulation cycle.
type Clock interface {
	Cycle() uint64
}

// Tracer is a hook that writes one line per reuse event.
type Tracer struct {
	w     io.Writer
	clock Clock
}

// NewTracer creates a Tracer that writes to w. clock may be nil, in which
// case lines carry no cycle stamp.
func NewTracer(w io.Writer, clock Clock) *Tracer {
	return &Tracer{w: w, clock: clock}
}

// Func writes the event described by ctx.
func (t *Tracer) Func(ctx sim.HookCtx) {
	prefix := ""
	if t.clock != nil {
		prefix = fmt.Sprintf("cycle=%d ", t.clock.Cycle())
	}

	switch ctx.Pos {
	case HookPosLookup:
		a := ctx.Item.(Access)
		fmt.Fprintf(t.w, "%slookup pc=0x%x class=%s ops=%v hit=%t results=%v\n",
			prefix, a.PC, a.Class, a.Operands, a.Hit, a.Results)
	case HookPosInsert:
		a := ctx.Item.(Access)
		fmt.Fprintf(t.w, "%sinsert pc=0x%x class=%s ops=%v results=%v\n",
			prefix, a.PC, a.Class, a.Operands, a.Results)
	case HookPosEvict:
		e := ctx.Item.(Entry)
		fmt.Fprintf(t.w, "%sevict pc=0x%x ops=%v results=%v\n",
			prefix, e.PC, e.Operands, e.Results)
	}
}

// DumpEntries writes the resident entries of b, oldest first.
func DumpEntries(w io.Writer, b *Buffer) {
	fmt.Fprintf(w, "reuse buffer: %d/%d entries\n", b.Len(), b.Capacity())
	for i, e := range b.Entries() {
		fmt.Fprintf(w, "  [%d] pc=0x%x ops=%v results=%v\n",
			i, e.PC, e.Operands, e.Results)
	}
}
