// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"io"
	"log"

	"github.com/ezrec/cnstr/token"
)

// Vm is the execution context for a CNSTR program.
type Vm struct {
	Verbose bool      // Set to enable verbose logging.
	Output  io.Writer // Destination of stdout instructions.

	Program    *Program   // Program being executed.
	Registers  Registers  // Register store.
	JumpPoints JumpPoints // Jump point table.
	Line       int        // Index of the next logical line to execute.

	jumped bool // Set when the current instruction replaced Line.
}

// NewVm creates a new VM for a program, writing output to out.
func NewVm(prog *Program, out io.Writer) (vm *Vm) {
	if prog == nil {
		prog = &Program{}
	}

	vm = &Vm{
		Output:     out,
		Program:    prog,
		Registers:  Registers{},
		JumpPoints: NewJumpPoints(),
	}

	return
}

// Reset the VM state.
// - Clears the registers.
// - Rebuilds the jump point table from a pre-pass over the program.
// - Sets the line counter to the first line.
func (vm *Vm) Reset() (err error) {
	if vm.Verbose {
		log.Printf("vm: reset")
	}

	vm.Registers = Registers{}
	vm.JumpPoints = NewJumpPoints()
	vm.Line = 0

	return vm.PresetJumpPoints()
}

// PresetJumpPoints runs every jump point declaration in the program, and
// nothing else, so that jumps may target lines not yet executed. Then it
// verifies that every literal jump target has been declared, and rewinds the
// line counter to the first line.
func (vm *Vm) PresetJumpPoints() (err error) {
	defer func() {
		if err == nil {
			vm.Line = 0
		}
	}()

	for lineno, line := range vm.Program.Lines {
		if len(line) == 0 || line[0].Kind != token.KIND_COMMAND || line[0].Op != token.CMD_SETJMPP {
			continue
		}
		vm.Line = lineno
		err = vm.setJumpPoint(line)
		if err != nil {
			err = vm.runtimeError(lineno, err)
			return
		}
	}

	for lineno, line := range vm.Program.Lines {
		if len(line) < 2 || line[0].Kind != token.KIND_COMMAND || line[1].Op != token.LIT_STRING {
			continue
		}
		if line[0].Op != token.CMD_JMP && line[0].Op != token.CMD_JMPIF {
			continue
		}
		_, err = vm.JumpPoints.Lookup(line[1].Text())
		if err != nil {
			err = vm.runtimeError(lineno, err)
			return
		}
	}

	if vm.Verbose {
		for name, lineno := range vm.JumpPoints.All() {
			log.Printf("vm: jump point %v: %03d", name, lineno)
		}
	}

	return
}

// runtimeError locates an error at a program line.
func (vm *Vm) runtimeError(lineno int, err error) error {
	return &ErrRuntime{
		LineNo: lineno,
		Line:   vm.Program.Source(lineno),
		Tokens: vm.Program.Describe(lineno),
		Err:    err,
	}
}

// Done returns true once the line counter has left the program.
func (vm *Vm) Done() bool {
	return vm.Line < 0 || vm.Line >= vm.Program.Len()
}

// Tick executes the logical line at the line counter, then advances the
// line counter unless the line jumped.
func (vm *Vm) Tick() (done bool, err error) {
	if vm.Done() {
		done = true
		return
	}

	lineno := vm.Line
	defer func() {
		if err != nil {
			err = vm.runtimeError(lineno, err)
		}
	}()

	line := vm.Program.Lines[lineno]
	if vm.Verbose {
		log.Printf("%03d: %v", lineno, token.Source(line))
	}

	vm.jumped = false
	err = vm.Execute(line)
	if err != nil {
		return
	}

	if !vm.jumped {
		vm.Line++
	}

	return
}

// Run resets the VM, and executes until the program falls off its end, or
// a runtime error occurs.
func (vm *Vm) Run() (err error) {
	err = vm.Reset()
	if err != nil {
		return
	}

	for done, err := vm.Tick(); !done; done, err = vm.Tick() {
		if err != nil {
			return err
		}
	}

	return
}

// jump transfers control to a line.
func (vm *Vm) jump(lineno int) {
	vm.Line = lineno
	vm.jumped = true
}
