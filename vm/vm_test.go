package vm

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/cnstr/lexer"
	"github.com/ezrec/cnstr/token"
)

func doCompile(t *testing.T, program []string) (vm *Vm, output *bytes.Buffer) {
	lex := &lexer.Lexer{}
	tokens, err := lex.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	output = &bytes.Buffer{}
	vm = NewVm(NewProgram(tokens), output)
	return
}

func doRun(t *testing.T, program []string) (vm *Vm, output string, err error) {
	vm, out := doCompile(t, program)
	err = vm.Run()
	output = out.String()
	return
}

func TestVmEmpty(t *testing.T) {
	assert := assert.New(t)

	vm := NewVm(nil, &bytes.Buffer{})
	assert.NoError(vm.Run())
	assert.True(vm.Done())

	done, err := vm.Tick()
	assert.True(done)
	assert.NoError(err)
}

func TestVmMov(t *testing.T) {
	assert := assert.New(t)

	vm, _, err := doRun(t, []string{
		"set ra 7",
		"mov ra rb",
	})
	assert.NoError(err)
	assert.Equal(token.Number(0), vm.Registers.Get("ra"))
	assert.Equal(token.Number(7), vm.Registers.Get("rb"))
}

func TestVmCpy(t *testing.T) {
	assert := assert.New(t)

	vm, _, err := doRun(t, []string{
		"set ra 'text'",
		"cpy ra rb",
	})
	assert.NoError(err)
	assert.Equal(token.String("text"), vm.Registers.Get("ra"))
	assert.Equal(token.String("text"), vm.Registers.Get("rb"))
}

func TestVmAutoVivify(t *testing.T) {
	assert := assert.New(t)

	vm, _, err := doRun(t, []string{
		"add rx 1 ry",
	})
	assert.NoError(err)
	assert.Equal(token.Number(1), vm.Registers["ry"])
	assert.Equal(token.Number(0), vm.Registers["rx"])
	assert.Equal(2, len(vm.Registers))
}

func TestVmMath(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Line   string
		Expect float64
	}){
		{"add ra 3 rc", 8},
		{"sub ra 3 rc", 2},
		{"mul ra 3 rc", 15},
		{"div ra 2 rc", 2.5},
		{"mod ra 3 rc", 2},
		{"mod -5 3 rc", 1},
		{"mod 5 -3 rc", -1},
		{"pow ra 2 rc", 25},
		{"pow 2 -1 rc", 0.5},
		{"add ra ra rc", 10},
		{"div ra 0 rc", math.Inf(1)},
		{"div -1 0 rc", math.Inf(-1)},
	}

	for _, entry := range table {
		vm, _, err := doRun(t, []string{"set ra 5", entry.Line})
		assert.NoError(err, entry.Line)
		assert.Equal(token.Number(entry.Expect), vm.Registers.Get("rc"), entry.Line)
	}

	vm, _, err := doRun(t, []string{"mod 1 0 rc", "div 0 0 rd"})
	assert.NoError(err)
	assert.True(math.IsNaN(vm.Registers.Get("rc").Num))
	assert.True(math.IsNaN(vm.Registers.Get("rd").Num))
}

func TestVmMathErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Program []string
		Err     error
	}){
		{[]string{"add 1 2"}, ErrInvalidUsage},
		{[]string{"add 1 2 3"}, ErrInvalidUsage},
		{[]string{"add 1 'x' ra"}, ErrInvalidUsage},
		{[]string{"set rs 'x'", "add rs 1 ra"}, ErrTypeMismatch},
		{[]string{"pow 1 2 ra rb"}, ErrInvalidUsage},
	}

	for _, entry := range table {
		_, _, err := doRun(t, entry.Program)
		assert.ErrorIs(err, entry.Err, entry.Program)
	}
}

func TestVmString(t *testing.T) {
	assert := assert.New(t)

	vm, _, err := doRun(t, []string{
		`set ra "hi"`,
		"strlen ra rb",
		"strapp ra ' there' rc",
		"set rd '!'",
		"strapp rc rd rc",
		"charat rc 1 re",
		"set ri 3.9",
		"charat rc ri rf",
		"set ru 'héllo'",
		"strlen ru rl",
		"charat ru 1 rg",
	})
	assert.NoError(err)
	assert.Equal(token.Number(2), vm.Registers.Get("rb"))
	assert.Equal(token.String("hi there!"), vm.Registers.Get("rc"))
	assert.Equal(token.String("i"), vm.Registers.Get("re"))
	assert.Equal(token.String("t"), vm.Registers.Get("rf"))
	assert.Equal(token.Number(5), vm.Registers.Get("rl"))
	assert.Equal(token.String("é"), vm.Registers.Get("rg"))
}

func TestVmStringErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Program []string
		Err     error
	}){
		{[]string{"strlen ra rb"}, ErrTypeMismatch},
		{[]string{"strlen ra"}, ErrInvalidUsage},
		{[]string{"set ra 'x'", "strapp ra 1 rb"}, ErrInvalidUsage},
		{[]string{"set ra 'x'", "strapp ra rz rb"}, ErrTypeMismatch},
		{[]string{"strapp ra 'y' rb"}, ErrTypeMismatch},
		{[]string{"set ra 'abc'", "charat ra 3 rb"}, ErrIndexOutOfBounds},
		{[]string{"set ra 'abc'", "charat ra -1 rb"}, ErrIndexOutOfBounds},
		{[]string{"set ra ''", "charat ra 0 rb"}, ErrIndexOutOfBounds},
		{[]string{"set ra 'abc'", "div 0 0 ri", "charat ra ri rb"}, ErrIndexOutOfBounds},
		{[]string{"set ra 'abc'", "set ri 'x'", "charat ra ri rb"}, ErrTypeMismatch},
		{[]string{"set ra 'abc'", "charat ra 'x' rb"}, ErrInvalidUsage},
		{[]string{"charat ra 0 rb"}, ErrTypeMismatch},
	}

	for _, entry := range table {
		_, _, err := doRun(t, entry.Program)
		assert.ErrorIs(err, entry.Err, entry.Program)
	}
}

func TestVmStdout(t *testing.T) {
	assert := assert.New(t)

	_, output, err := doRun(t, []string{
		"set ra 8",
		"set rb 'x'",
		"stdout 'a' , ra , rb endl",
		"stdout",
		"stdout 1.5 = mov",
		", , ra",
	})
	assert.NoError(err)
	assert.Equal("a 8.0 x\n\n1.5=mov", output)
}

func TestVmJump(t *testing.T) {
	assert := assert.New(t)

	vm, output, err := doRun(t, []string{
		"set ri 0",
		"# count to three",
		"setjmpp 'loop'",
		"add ri 1 ri",
		"stdout ri endl",
		"jmpif 'loop' ri < 3",
		"jmp 'end'",
		"stdout 'skipped'",
		"setjmpp 'end'",
	})
	assert.NoError(err)
	assert.Equal("1.0\n2.0\n3.0\n", output)
	assert.Equal(token.Number(3), vm.Registers.Get("ri"))
	assert.Equal(JumpPoints{START: 0, "loop": 2, "end": 8}, vm.JumpPoints)
}

func TestVmJumpLine(t *testing.T) {
	assert := assert.New(t)

	vm, _ := doCompile(t, []string{
		"set ra 1",
		"setjmpp 'loop'",
		"set rb 2",
		"jmp 'loop'",
	})
	require.NoError(t, vm.Reset())
	assert.Equal(0, vm.Line)
	assert.Equal(1, vm.JumpPoints["loop"])
	assert.Empty(vm.Registers)

	for range 4 {
		done, err := vm.Tick()
		assert.False(done)
		assert.NoError(err)
	}
	assert.Equal(1, vm.Line)

	// Jump to start re-executes line 0.
	vm, _ = doCompile(t, []string{
		"add ra 1 ra",
		"jmpif 'start' ra < 3",
	})
	assert.NoError(vm.Run())
	assert.Equal(token.Number(3), vm.Registers.Get("ra"))
}

func TestVmJumpForward(t *testing.T) {
	assert := assert.New(t)

	vm, _, err := doRun(t, []string{
		"jmp 'later'",
		"set ra 1",
		"setjmpp 'later'",
		"set rb 1",
	})
	assert.NoError(err)
	assert.Equal(token.Number(0), vm.Registers.Get("ra"))
	assert.Equal(token.Number(1), vm.Registers.Get("rb"))
}

func TestVmJumpMissing(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Program []string
		LineNo  int
	}){
		{[]string{"jmp 'missing'"}, 0},
		{[]string{"jmp 'end'", "jmp 'missing'", "setjmpp 'end'"}, 1},
		{[]string{"set ra 1", "jmpif 'missing' ra = 2"}, 1},
	}

	for _, entry := range table {
		vm, _, err := doRun(t, entry.Program)
		assert.ErrorIs(err, ErrUndeclaredJumpPoint, entry.Program)

		var rt *ErrRuntime
		if assert.True(errors.As(err, &rt)) {
			assert.Equal(entry.LineNo, rt.LineNo)
		}
		assert.Empty(vm.Registers, entry.Program)
	}
}

func TestVmJumpPointErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Line string
		Err  error
	}){
		{"setjmpp 1", ErrInvalidUsage},
		{"setjmpp", ErrInvalidUsage},
		{"setjmpp 'has space'", ErrInvalidUsage},
		{"setjmpp 'Loop'", ErrInvalidUsage},
		{"setjmpp 'mov'", ErrInvalidUsage},
		{"setjmpp ''", ErrInvalidUsage},
		{"jmp 3", ErrInvalidUsage},
		{"jmp ra", ErrInvalidUsage},
		{"jmpif 'start' ra = 'x'", ErrInvalidUsage},
		{"jmpif 'start' ra 1 1", ErrInvalidUsage},
		{"jmpif 7 ra = 1", ErrInvalidUsage},
	}

	for _, entry := range table {
		_, _, err := doRun(t, []string{"set rz 1", entry.Line})
		assert.ErrorIs(err, entry.Err, entry.Line)
	}
}

func TestVmJumpStartDeclared(t *testing.T) {
	assert := assert.New(t)

	vm, _, err := doRun(t, []string{
		"set ra 1",
		"setjmpp 'start'",
	})
	assert.NoError(err)
	assert.Equal(0, vm.JumpPoints[START])
}

func TestVmCompare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Op    token.Op
		A, B  token.Value
		Taken bool
	}){
		{token.CMP_EQ, token.Number(1), token.Number(1), true},
		{token.CMP_NEQ, token.Number(1), token.Number(1), false},
		{token.CMP_GT, token.Number(2), token.Number(1), true},
		{token.CMP_LT, token.Number(2), token.Number(1), false},
		{token.CMP_GTE, token.Number(1), token.Number(1), true},
		{token.CMP_LTE, token.Number(0), token.Number(1), true},
		{token.CMP_LT, token.String("abc"), token.String("abd"), true},
		{token.CMP_EQ, token.String("x"), token.String("x"), true},
		{token.CMP_EQ, token.String("1"), token.Number(1), false},
		{token.CMP_NEQ, token.String("1"), token.Number(1), true},
		{token.CMP_EQ, token.Number(math.NaN()), token.Number(math.NaN()), false},
		{token.CMP_NEQ, token.Number(math.NaN()), token.Number(1), true},
		{token.CMP_LTE, token.Number(math.NaN()), token.Number(1), false},
	}

	for _, entry := range table {
		taken, err := compare(entry.Op, entry.A, entry.B)
		assert.NoError(err)
		assert.Equal(entry.Taken, taken, "%v %v %v", entry.A, entry.Op, entry.B)
	}

	_, err := compare(token.CMP_LT, token.String("1"), token.Number(1))
	assert.ErrorIs(err, ErrTypeMismatch)

	_, err = compare(token.CMD_MOV, token.Number(1), token.Number(1))
	assert.ErrorIs(err, ErrUnsupportedStatement)
}

func TestVmUnsupported(t *testing.T) {
	assert := assert.New(t)

	for _, line := range []string{"ra rb", "1 2", "endl", "'x'", "= ra"} {
		_, _, err := doRun(t, []string{line})
		assert.ErrorIs(err, ErrUnsupportedStatement, line)
	}
}

func TestVmRuntimeError(t *testing.T) {
	assert := assert.New(t)

	_, _, err := doRun(t, []string{
		"# leading comment",
		"set ra 'x'",
		"mov ra",
	})
	require.Error(t, err)

	var rt *ErrRuntime
	require.True(t, errors.As(err, &rt))
	assert.Equal(2, rt.LineNo)
	assert.Equal("mov ra", rt.Line)
	assert.Equal("COMMAND<MOV> REGISTER", rt.Tokens)
	assert.Equal("Error on line 2:\n"+
		" - Invalid command usage for 'mov'. Expected command in form 'mov <regX> <regY>'\n"+
		" - LINE: \"mov ra\"\n"+
		" - TOKENS: COMMAND<MOV> REGISTER", err.Error())
}

func TestVmRuntimeErrorLargeLineNumber(t *testing.T) {
	assert := assert.New(t)

	program := make([]string, 1200)
	for n := range program {
		program[n] = "add ra 1 ra"
	}
	program[1100] = "mov ra"

	vm, _, err := doRun(t, program)
	require.Error(t, err)
	assert.Equal(1100, vm.Line)
	assert.True(strings.HasPrefix(err.Error(), "Error on line 1100:\n"), err.Error())
	assert.NotContains(err.Error(), "1,100")
}

func TestVmCommandTokenWithoutCommandOp(t *testing.T) {
	assert := assert.New(t)

	vm := NewVm(&Program{}, &bytes.Buffer{})
	err := vm.Execute([]token.Token{token.Command(token.CMP_EQ, "=")})
	assert.ErrorIs(err, ErrUnsupportedStatement)
}

func TestVmPrepassKeepsRegisters(t *testing.T) {
	assert := assert.New(t)

	vm, _ := doCompile(t, []string{
		"set ra 1",
		"setjmpp 'here'",
	})
	vm.Registers.Set("rq", token.Number(9))
	require.NoError(t, vm.PresetJumpPoints())
	assert.Equal(token.Number(9), vm.Registers["rq"])
	assert.Equal(1, len(vm.Registers))
	assert.Equal(1, vm.JumpPoints["here"])
	assert.Equal(0, vm.Line)
}
