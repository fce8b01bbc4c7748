package insts

import (
	"fmt"
	"strings"
)

// OpClass is the functional-unit class of an instruction.
type OpClass uint8

// Operation classes.
const (
	OpClassUnknown OpClass = iota
	OpClassIntALU
	OpClassIntMul
	OpClassIntDiv
	OpClassFloatAdd
	OpClassFloatMul
	OpClassFloatDiv
	OpClassLoad
	OpClassStore
	OpClassBranch
	OpClassSyscall
)

var opClassNames = [...]string{
	OpClassUnknown:  "unknown",
	OpClassIntALU:   "int_alu",
	OpClassIntMul:   "int_mul",
	OpClassIntDiv:   "int_div",
	OpClassFloatAdd: "float_add",
	OpClassFloatMul: "float_mul",
	OpClassFloatDiv: "float_div",
	OpClassLoad:     "load",
	OpClassStore:    "store",
	OpClassBranch:   "branch",
	OpClassSyscall:  "syscall",
}

// String returns the trace name of the class.
func (c OpClass) String() string {
	if int(c) < len(opClassNames) {
		return opClassNames[c]
	}
	return fmt.Sprintf("OpClass(%d)", uint8(c))
}

// IsInt returns true for integer arithmetic classes.
func (c OpClass) IsInt() bool {
	switch c {
	case OpClassIntALU, OpClassIntMul, OpClassIntDiv:
		return true
	default:
		return false
	}
}

// IsFloat returns true for floating-point arithmetic classes.
func (c OpClass) IsFloat() bool {
	switch c {
	case OpClassFloatAdd, OpClassFloatMul, OpClassFloatDiv:
		return true
	default:
		return false
	}
}

// IsMemory returns true for loads and stores.
func (c OpClass) IsMemory() bool {
	return c == OpClassLoad || c == OpClassStore
}

// Reusable returns true if the result of an instruction of this class is a
// pure function of its operands. Memory, control-flow and system
// instructions depend on state outside their register operands and are
// never reused.
func (c OpClass) Reusable() bool {
	return c.IsInt() || c.IsFloat()
}

// ParseOpClass converts a trace name into an OpClass.
func ParseOpClass(name string) (OpClass, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range opClassNames {
		if i == int(OpClassUnknown) {
			continue
		}
		if n == lower {
			return OpClass(i), nil
		}
	}
	return OpClassUnknown, fmt.Errorf("unknown op class %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (c OpClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *OpClass) UnmarshalText(text []byte) error {
	parsed, err := ParseOpClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
