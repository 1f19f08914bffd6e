package vm

import (
	"cmp"
	"iter"

	"github.com/ezrec/cnstr/internal"
	"github.com/ezrec/cnstr/token"
)

// START is the built-in jump point for the first line.
const START = "start"

// Registers is the register store, keyed by register name ("ra", "r1b").
type Registers map[string]token.Value

// Get reads a register. Registers that were never written read as the
// number 0, and are created by the read.
func (regs Registers) Get(name string) token.Value {
	value, ok := regs[name]
	if !ok {
		value = token.Number(0)
		regs[name] = value
	}

	return value
}

// Set writes a register, replacing any prior value and type.
func (regs Registers) Set(name string, value token.Value) {
	regs[name] = value
}

// All iterates over the registers in name order.
func (regs Registers) All() iter.Seq2[string, token.Value] {
	return internal.IterSorted(regs)
}

// JumpPoints maps jump point names to logical line indexes.
type JumpPoints map[string]int

// NewJumpPoints creates a jump point table holding only START.
func NewJumpPoints() JumpPoints {
	return JumpPoints{START: 0}
}

// Declare binds a jump point to a line. START is always line 0.
func (jps JumpPoints) Declare(name string, lineno int) {
	if name == START {
		return
	}
	jps[name] = lineno
}

// Lookup resolves a jump point.
func (jps JumpPoints) Lookup(name string) (lineno int, err error) {
	lineno, ok := jps[name]
	if !ok {
		err = fail(ErrUndeclaredJumpPoint, "Jump point '%v' does not exist.", name)
	}
	return
}

// All iterates over the jump points in line order, then name order.
func (jps JumpPoints) All() iter.Seq2[string, int] {
	return internal.IterSortedFunc(jps, func(k1 string, v1 int, k2 string, v2 int) int {
		return cmp.Or(cmp.Compare(v1, v2), cmp.Compare(k1, k2))
	})
}
