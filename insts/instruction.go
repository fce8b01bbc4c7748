package insts

// Instruction is a completed (or issued) dynamic instruction as seen by the
// reuse logic.
type Instruction struct {
	// PC is the program address of the instruction.
	PC uint64 `json:"pc"`
	// Class is the functional-unit class.
	Class OpClass `json:"class"`
	// Operands holds the source register values in operand order.
	Operands []uint64 `json:"operands"`
	// Results holds the destination register values in production order.
	Results []uint64 `json:"results"`
}

// Clone returns a deep copy of the instruction.
func (i *Instruction) Clone() *Instruction {
	return &Instruction{
		PC:       i.PC,
		Class:    i.Class,
		Operands: append([]uint64(nil), i.Operands...),
		Results:  append([]uint64(nil), i.Results...),
	}
}
