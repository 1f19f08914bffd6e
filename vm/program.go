package vm

import (
	"github.com/ezrec/cnstr/token"
)

// Program is a tokenized source, split into logical lines.
type Program struct {
	Lines [][]token.Token
}

// NewProgram splits a token stream into logical lines on line end tokens.
// The line end tokens themselves are dropped.
func NewProgram(tokens []token.Token) (prog *Program) {
	prog = &Program{}

	var line []token.Token
	for _, tok := range tokens {
		if tok.Kind == token.KIND_ENDLINE {
			prog.Lines = append(prog.Lines, line)
			line = nil
			continue
		}
		line = append(line, tok)
	}

	if len(line) > 0 {
		prog.Lines = append(prog.Lines, line)
	}

	return
}

// Len returns the number of logical lines.
func (prog *Program) Len() int {
	return len(prog.Lines)
}

// Source reconstructs the source text of a logical line.
func (prog *Program) Source(lineno int) string {
	if lineno < 0 || lineno >= len(prog.Lines) {
		return ""
	}
	return token.Source(prog.Lines[lineno])
}

// Describe returns the token kinds of a logical line.
func (prog *Program) Describe(lineno int) string {
	if lineno < 0 || lineno >= len(prog.Lines) {
		return ""
	}
	return token.Describe(prog.Lines[lineno])
}
