package vm

import (
	"io"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ezrec/cnstr/token"
)

// shape is a set of token kinds accepted as an operand.
type shape uint

const (
	opReg = shape(1 << token.KIND_REGISTER)
	opLit = shape(1 << token.KIND_LITERAL)
	opCmp = shape(1 << token.KIND_COMPARE)
)

// expect returns true if the operands following the command of a line
// match the shapes, one for one.
func expect(line []token.Token, shapes ...shape) bool {
	if len(line) != len(shapes)+1 {
		return false
	}

	for n, s := range shapes {
		if s&shape(1<<line[n+1].Kind) == 0 {
			return false
		}
	}

	return true
}

// usage reports that a command does not match its expected form.
func usage(name string, form string) error {
	return fail(ErrInvalidUsage, "Invalid command usage for '%v'. Expected command in form '%v %v'", name, name, form)
}

// Execute executes a single logical line.
func (vm *Vm) Execute(line []token.Token) (err error) {
	if len(line) == 0 {
		return
	}

	command := line[0]
	if command.Kind == token.KIND_COMMENT {
		return
	}

	if command.Kind != token.KIND_COMMAND || !command.Op.IsCommand() {
		err = fail(ErrUnsupportedStatement, "Unsupported code statement '%v'.", token.Describe(line))
		return
	}

	switch command.Op {
	case token.CMD_MOV:
		err = vm.execMov(line)
	case token.CMD_CPY:
		err = vm.execCpy(line)
	case token.CMD_SET:
		err = vm.execSet(line)
	case token.CMD_ADD, token.CMD_SUB, token.CMD_MUL, token.CMD_DIV, token.CMD_MOD, token.CMD_POW:
		err = vm.execMath(line)
	case token.CMD_STDOUT:
		err = vm.execStdout(line)
	case token.CMD_SETJMPP:
		err = vm.setJumpPoint(line)
	case token.CMD_JMP:
		err = vm.execJmp(line)
	case token.CMD_JMPIF:
		err = vm.execJmpIf(line)
	case token.CMD_STRLEN:
		err = vm.execStrlen(line)
	case token.CMD_STRAPP:
		err = vm.execStrapp(line)
	case token.CMD_CHARAT:
		err = vm.execCharAt(line)
	case token.CMD_SPACE:
		// no-op
	case token.CMD_ENDL:
		// Only meaningful as a stdout operand.
		err = fail(ErrUnsupportedStatement, "Unsupported command '%v'.", command.Text())
	default:
		err = fail(ErrUnsupportedStatement, "Unsupported command '%v'.", command.Text())
	}

	return
}

// mov <regX> <regY>: regY = regX, regX = 0
func (vm *Vm) execMov(line []token.Token) (err error) {
	if !expect(line, opReg, opReg) {
		return usage("mov", "<regX> <regY>")
	}

	src, dst := line[1].Text(), line[2].Text()
	vm.Registers.Set(dst, vm.Registers.Get(src))
	vm.Registers.Set(src, token.Number(0))

	return
}

// cpy <regFr> <regTo>: regTo = regFr
func (vm *Vm) execCpy(line []token.Token) (err error) {
	if !expect(line, opReg, opReg) {
		return usage("cpy", "<regFr> <regTo>")
	}

	vm.Registers.Set(line[2].Text(), vm.Registers.Get(line[1].Text()))

	return
}

// set <regX> <literal>
func (vm *Vm) execSet(line []token.Token) (err error) {
	if !expect(line, opReg, opLit) {
		return usage("set", "<regX> <literal>")
	}

	vm.Registers.Set(line[1].Text(), line[2].Value)

	return
}

// number gets the numeric value of a register or numeric literal operand.
func (vm *Vm) number(name string, tok token.Token) (value float64, err error) {
	var v token.Value
	switch tok.Kind {
	case token.KIND_REGISTER:
		v = vm.Registers.Get(tok.Text())
	case token.KIND_LITERAL:
		if tok.Op != token.LIT_NUMBER {
			err = fail(ErrInvalidUsage, "Invalid usage for '%v'. Expected literal number, got '%v'.", name, tok.Op)
			return
		}
		v = tok.Value
	default:
		err = fail(ErrInvalidUsage, "Invalid usage for '%v'. Expected register or number, got '%v'.", name, tok.Describe())
		return
	}

	if !v.IsNumber() {
		err = fail(ErrTypeMismatch, "Invalid usage for '%v'. Expected number, got '%v'.", name, v.Type)
		return
	}

	value = v.Num
	return
}

// str gets the string value of a register or string literal operand.
func (vm *Vm) str(name string, tok token.Token) (value string, err error) {
	var v token.Value
	switch tok.Kind {
	case token.KIND_REGISTER:
		v = vm.Registers.Get(tok.Text())
	case token.KIND_LITERAL:
		if tok.Op != token.LIT_STRING {
			err = fail(ErrInvalidUsage, "Invalid command usage for '%v'. Expected string literal, got '%v'", name, tok.Op)
			return
		}
		v = tok.Value
	default:
		err = fail(ErrInvalidUsage, "Invalid command usage for '%v'. Expected register or string, got '%v'", name, tok.Describe())
		return
	}

	if !v.IsString() {
		err = fail(ErrTypeMismatch, "Invalid command usage for '%v'. Expected string, got '%v'", name, v.Type)
		return
	}

	value = v.Str
	return
}

// floorMod is the remainder of a floored division; it takes the sign of
// the divisor.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// add|sub|mul|div|mod|pow <reg|num> <reg|num> <regO>
func (vm *Vm) execMath(line []token.Token) (err error) {
	name := line[0].Text()
	if !expect(line, opReg|opLit, opReg|opLit, opReg) {
		return fail(ErrInvalidUsage, "Invalid usage for '%v'. Expected command in form '%v <reg|num> <reg|num> <regO>'", name, name)
	}

	a, err := vm.number(name, line[1])
	if err != nil {
		return
	}
	b, err := vm.number(name, line[2])
	if err != nil {
		return
	}

	var result float64
	switch line[0].Op {
	case token.CMD_ADD:
		result = a + b
	case token.CMD_SUB:
		result = a - b
	case token.CMD_MUL:
		result = a * b
	case token.CMD_DIV:
		result = a / b
	case token.CMD_MOD:
		result = floorMod(a, b)
	case token.CMD_POW:
		result = math.Pow(a, b)
	}

	vm.Registers.Set(line[3].Text(), token.Number(result))

	return
}

// stdout <any>...
func (vm *Vm) execStdout(line []token.Token) (err error) {
	if len(line) == 1 {
		_, err = io.WriteString(vm.Output, "\n")
		return
	}

	var out strings.Builder
	for _, tok := range line[1:] {
		switch tok.Kind {
		case token.KIND_REGISTER:
			out.WriteString(vm.Registers.Get(tok.Text()).String())
		case token.KIND_LITERAL:
			out.WriteString(tok.Value.String())
		case token.KIND_COMMAND:
			switch tok.Op {
			case token.CMD_ENDL:
				out.WriteString("\n")
			case token.CMD_SPACE:
				out.WriteString(" ")
			default:
				out.WriteString(tok.Text())
			}
		case token.KIND_COMPARE:
			out.WriteString(tok.Text())
		default:
			err = fail(ErrUnsupportedStatement, "Unsupported code statement '%v'.", token.Describe(line))
			return
		}
	}

	_, err = io.WriteString(vm.Output, out.String())

	return
}

// jumpName gets the jump point name operand of setjmpp, jmp, or jmpif.
func jumpName(name string, tok token.Token) (label string, err error) {
	if tok.Op != token.LIT_STRING {
		err = fail(ErrInvalidUsage, "Invalid command usage for '%v'. Expected literal string, got '%v'", name, tok.Op)
		return
	}

	label = tok.Text()
	return
}

// setjmpp <string lit>
func (vm *Vm) setJumpPoint(line []token.Token) (err error) {
	if !expect(line, opLit) {
		return usage("setjmpp", "<string lit>")
	}

	label, err := jumpName("setjmpp", line[1])
	if err != nil {
		return
	}

	isAlnum := len(label) > 0
	for _, c := range label {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			isAlnum = false
			break
		}
	}

	switch {
	case !isAlnum:
		err = fail(ErrInvalidUsage, "Invalid command usage for 'setjmpp'. Jump point name must be alphanumeric.")
	case strings.ToLower(label) != label:
		err = fail(ErrInvalidUsage, "Invalid command usage for 'setjmpp'. Jump point name must be lowercase.")
	case token.IsReserved(label):
		err = fail(ErrInvalidUsage, "Invalid command usage for 'setjmpp'. Jump point name cannot shadow built in names.")
	default:
		vm.JumpPoints.Declare(label, vm.Line)
	}

	return
}

// jmp <string lit>
func (vm *Vm) execJmp(line []token.Token) (err error) {
	if !expect(line, opLit) {
		return usage("jmp", "<string lit>")
	}

	label, err := jumpName("jmp", line[1])
	if err != nil {
		return
	}

	lineno, err := vm.JumpPoints.Lookup(label)
	if err != nil {
		return
	}

	vm.jump(lineno)

	return
}

// compare evaluates a comparator. Numbers compare numerically, strings
// lexically. A number never equals a string, and cannot be ordered
// against one.
func compare(op token.Op, a, b token.Value) (ok bool, err error) {
	if !op.IsCompare() {
		err = fail(ErrUnsupportedStatement, "Unsupported comparison '%v'.", op)
		return
	}

	switch op {
	case token.CMP_EQ:
		ok = a.Equal(b)
		return
	case token.CMP_NEQ:
		ok = !a.Equal(b)
		return
	}

	if a.Type != b.Type {
		err = fail(ErrTypeMismatch, "Invalid command usage for 'jmpif'. Cannot compare '%v' with '%v'.", a.Type, b.Type)
		return
	}

	var order int
	if a.IsString() {
		order = strings.Compare(a.Str, b.Str)
	} else {
		switch {
		case a.Num < b.Num:
			order = -1
		case a.Num > b.Num:
			order = 1
		case a.Num == b.Num:
			order = 0
		default:
			// NaN is unordered.
			return
		}
	}

	switch op {
	case token.CMP_GT:
		ok = order > 0
	case token.CMP_LT:
		ok = order < 0
	case token.CMP_GTE:
		ok = order >= 0
	case token.CMP_LTE:
		ok = order <= 0
	}

	return
}

// jmpif <string lit> <reg> <compare> <reg|number>
func (vm *Vm) execJmpIf(line []token.Token) (err error) {
	if !expect(line, opLit, opReg, opCmp, opReg|opLit) {
		return usage("jmpif", "<string lit> <reg> <compare> <reg|number>")
	}

	a := vm.Registers.Get(line[2].Text())

	var b token.Value
	switch arg := line[4]; arg.Kind {
	case token.KIND_REGISTER:
		b = vm.Registers.Get(arg.Text())
	default:
		if arg.Op != token.LIT_NUMBER {
			err = fail(ErrInvalidUsage, "Invalid command usage for 'jmpif'. Expected literal number, got '%v'.", arg.Op)
			return
		}
		b = arg.Value
	}

	label, err := jumpName("jmpif", line[1])
	if err != nil {
		return
	}

	lineno, err := vm.JumpPoints.Lookup(label)
	if err != nil {
		return
	}

	taken, err := compare(line[3].Op, a, b)
	if err != nil {
		return
	}

	if taken {
		vm.jump(lineno)
	}

	return
}

// strlen <regIn> <regOut>
func (vm *Vm) execStrlen(line []token.Token) (err error) {
	if !expect(line, opReg, opReg) {
		return usage("strlen", "<regIn> <regOut>")
	}

	value, err := vm.str("strlen", line[1])
	if err != nil {
		return
	}

	vm.Registers.Set(line[2].Text(), token.Number(float64(utf8.RuneCountInString(value))))

	return
}

// strapp <regIn> <reg|literal> <regOut>
func (vm *Vm) execStrapp(line []token.Token) (err error) {
	if !expect(line, opReg, opReg|opLit, opReg) {
		return usage("strapp", "<regIn> <reg|literal> <regOut>")
	}

	head, err := vm.str("strapp", line[1])
	if err != nil {
		return
	}

	tail, err := vm.str("strapp", line[2])
	if err != nil {
		return
	}

	vm.Registers.Set(line[3].Text(), token.String(head+tail))

	return
}

// charat <regIn> <reg|literal> <regOut>
func (vm *Vm) execCharAt(line []token.Token) (err error) {
	if !expect(line, opReg, opReg|opLit, opReg) {
		return usage("charat", "<regIn> <reg|literal> <regOut>")
	}

	value, err := vm.str("charat", line[1])
	if err != nil {
		return
	}

	index, err := vm.number("charat", line[2])
	if err != nil {
		return
	}

	runes := []rune(value)
	index = math.Trunc(index)
	if math.IsNaN(index) || index < 0 || index >= float64(len(runes)) {
		err = fail(ErrIndexOutOfBounds, "Invalid command usage for 'charat'. Index out of bounds.")
		return
	}

	vm.Registers.Set(line[3].Text(), token.String(string(runes[int(index)])))

	return
}
