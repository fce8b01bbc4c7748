// Package reuse provides an instruction reuse buffer for timing simulation.
//
// A reuse buffer memoizes the results of previously executed instructions,
// keyed by program address and the concrete operand values consumed. When the
// same address and operands recur, the pipeline can take the stored results
// instead of executing the instruction again.
//
// The Buffer is a fixed-capacity FIFO. It is owned by a single pipeline
// stage and is not safe for concurrent use.
package reuse

// Entry is one memoized instruction execution.
type Entry struct {
	// PC is the program address of the instruction.
	PC uint64
	// Operands is the ordered list of operand values. Length is part of the key.
	Operands []uint64
	// Results is the ordered list of result values.
	Results []uint64
	// ResultCount is the number of results. Always equal to len(Results).
	ResultCount int
}

func (e *Entry) clone() Entry {
	return Entry{
		PC:          e.PC,
		Operands:    append([]uint64(nil), e.Operands...),
		Results:     append([]uint64(nil), e.Results...),
		ResultCount: e.ResultCount,
	}
}

// Buffer is a bounded, insertion-ordered reuse buffer with FIFO eviction.
//
// Entries live in a ring over a slice allocated once at construction. head
// indexes the oldest resident entry.
type Buffer struct {
	entries []Entry
	head    int
	count   int
}

// New creates a reuse buffer that holds at most capacity entries.
// It panics if capacity is not positive.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		panic("reuse: buffer capacity must be positive")
	}

	return &Buffer{
		entries: make([]Entry, capacity),
	}
}

// Capacity returns the maximum number of resident entries.
func (b *Buffer) Capacity() int {
	return len(b.entries)
}

// Len returns the number of resident entries.
func (b *Buffer) Len() int {
	return b.count
}

// at returns the i-th resident entry counted from the oldest.
func (b *Buffer) at(i int) *Entry {
	return &b.entries[(b.head+i)%len(b.entries)]
}

// isMatch compares the address first, then the operand count, then the
// operand values in order.
func (b *Buffer) isMatch(e *Entry, pc uint64, operands []uint64) bool {
	if e.PC != pc {
		return false
	}

	if len(e.Operands) != len(operands) {
		return false
	}

	for i, v := range operands {
		if e.Operands[i] != v {
			return false
		}
	}

	return true
}

// find returns the oldest resident entry matching the key, or nil.
// A key without operands never matches.
func (b *Buffer) find(pc uint64, operands []uint64) *Entry {
	if b.count == 0 || len(operands) == 0 {
		return nil
	}

	for i := 0; i < b.count; i++ {
		e := b.at(i)
		if b.isMatch(e, pc, operands) {
			return e
		}
	}

	return nil
}

// Contains returns true if a resident entry has the given address and an
// identical operand list. It always returns false for an empty operand list.
func (b *Buffer) Contains(pc uint64, operands []uint64) bool {
	return b.find(pc, operands) != nil
}

// Results returns a copy of the results of the oldest resident entry that
// matches the key. A miss returns an empty slice.
//
// A hit on an entry with no results also returns an empty slice; use
// Contains to tell the two apart.
func (b *Buffer) Results(pc uint64, operands []uint64) []uint64 {
	e := b.find(pc, operands)
	if e == nil {
		return nil
	}

	results := make([]uint64, e.ResultCount)
	copy(results, e.Results[:e.ResultCount])
	return results
}

// Insert records the results of an instruction. If the buffer is full, the
// oldest entry is evicted first. Duplicate keys are not collapsed.
func (b *Buffer) Insert(pc uint64, operands []uint64, results []uint64) {
	capacity := len(b.entries)

	if b.count == capacity {
		b.entries[b.head] = Entry{}
		b.head = (b.head + 1) % capacity
		b.count--
	}

	slot := (b.head + b.count) % capacity
	b.entries[slot] = Entry{
		PC:          pc,
		Operands:    append([]uint64(nil), operands...),
		Results:     append([]uint64(nil), results...),
		ResultCount: len(results),
	}
	b.count++
}

// Oldest returns a copy of the entry that the next eviction would remove.
func (b *Buffer) Oldest() (Entry, bool) {
	if b.count == 0 {
		return Entry{}, false
	}

	return b.at(0).clone(), true
}

// Entries returns a copy of all resident entries, oldest first.
func (b *Buffer) Entries() []Entry {
	entries := make([]Entry, 0, b.count)
	for i := 0; i < b.count; i++ {
		entries = append(entries, b.at(i).clone())
	}
	return entries
}
