// Package insts provides the instruction model that crosses the boundary
// between the pipeline and the reuse buffer.
//
// The reuse buffer does not decode instructions. It only needs the program
// address, a coarse operation class, and the concrete operand and result
// register values of a completed instruction:
//
//	inst := &insts.Instruction{
//		PC:       0x1000,
//		Class:    insts.OpClassIntALU,
//		Operands: []uint64{5, 10},
//		Results:  []uint64{15},
//	}
package insts
