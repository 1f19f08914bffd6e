// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator couples the CNSTR lexer and VM into a runnable machine.
package emulator

import (
	"fmt"
	"io"
	"log"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/cnstr/internal"
	"github.com/ezrec/cnstr/lexer"
	"github.com/ezrec/cnstr/token"
	"github.com/ezrec/cnstr/translate"
	"github.com/ezrec/cnstr/vm"
)

// Emulator state. Lexer + VM + register presets.
type Emulator struct {
	Verbose bool        // If set, enables verbose logging.
	*vm.Vm              // Reference to the VM.
	Lexer   lexer.Lexer // Tokenizer for loaded sources.

	predefine map[string]token.Value // Register presets.
}

// NewEmulator creates a new emulator, writing program output to out.
func NewEmulator(out io.Writer) (emu *Emulator) {
	emu = &Emulator{
		Vm:        vm.NewVm(nil, out),
		predefine: map[string]token.Value{},
	}

	return
}

// Eval evaluates a starlark expression to a register value.
func Eval(expr string) (value token.Value, err error) {
	thread := starlark.Thread{Name: "predefine"}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, nil)
	if err != nil {
		return
	}

	switch st := dict["rc"].(type) {
	case starlark.Int:
		value = token.Number(float64(st.Float()))
	case starlark.Float:
		value = token.Number(float64(st))
	case starlark.String:
		value = token.String(string(st))
	default:
		err = ErrPredefineType
	}

	return
}

// Predefine sets a register preset, applied on every Reset.
func (emu *Emulator) Predefine(register string, expr string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrPredefine{Register: register, Expr: expr, Err: err}
		}
	}()

	err = lexer.CheckRegister(register)
	if err != nil {
		return
	}

	value, err := Eval(expr)
	if err != nil {
		return
	}

	emu.predefine[register] = value

	return
}

// Load tokenizes a source, and installs it as the program to run.
func (emu *Emulator) Load(input io.Reader) (err error) {
	emu.Lexer.Verbose = emu.Verbose

	tokens, err := emu.Lexer.Parse(input)
	if err != nil {
		return
	}

	emu.Vm.Program = vm.NewProgram(tokens)

	return
}

// Reset the VM state, and apply the register presets.
func (emu *Emulator) Reset() (err error) {
	emu.Vm.Verbose = emu.Verbose

	err = emu.Vm.Reset()
	if err != nil {
		return
	}

	for register, value := range internal.IterSorted(emu.predefine) {
		if emu.Verbose {
			log.Printf("emulator: predefine %v = %v", register, value.Repr())
		}
		emu.Vm.Registers.Set(register, value)
	}

	return
}

// LineNo returns the line index of the next line to execute.
func (emu *Emulator) LineNo() int {
	return emu.Vm.Line
}

// Tick performs a single line of the program.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Vm.Verbose = emu.Verbose

	return emu.Vm.Tick()
}

// Run resets the emulator, and executes until done or a runtime error.
func (emu *Emulator) Run() (err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	return
}

// Dump writes the final registers and jump points.
func (emu *Emulator) Dump(w io.Writer) (err error) {
	var regs []string
	for name, value := range emu.Vm.Registers.All() {
		regs = append(regs, fmt.Sprintf("'%v': %v", name, value.Repr()))
	}

	var jps []string
	for name, lineno := range emu.Vm.JumpPoints.All() {
		jps = append(jps, fmt.Sprintf("'%v': %v", name, lineno))
	}

	_, err = translate.Fprintf(w, "registers: {%v}\njmp points: {%v}\n", strings.Join(regs, ", "), strings.Join(jps, ", "))

	return
}
