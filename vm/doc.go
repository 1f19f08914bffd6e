// Package vm implements the line-oriented virtual machine for CNSTR.
//
// The machine state is a register store mapping register names to number
// or string values, a jump point table mapping names to logical line
// indexes, and a line counter selecting the next logical line to execute.
// Jump points are resolved in a pre-pass over the whole program before the
// first instruction runs. Every runtime error is fatal.
package vm
