// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package token

import (
	"strings"
)

// Kind is the lexical class of a token.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_COMMAND  = Kind(0) // COMMAND
	KIND_REGISTER = Kind(1) // REGISTER
	KIND_LITERAL  = Kind(2) // LITERAL
	KIND_COMMENT  = Kind(3) // COMMENT
	KIND_ENDLINE  = Kind(4) // ENDLINE
	KIND_COMPARE  = Kind(5) // COMPARE
)

// Op refines a Kind: which command, which comparator, or which literal type.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NONE = Op(0) // NONE

	CMD_MOV     = Op(1)  // MOV
	CMD_CPY     = Op(2)  // CPY
	CMD_SET     = Op(3)  // SET
	CMD_ADD     = Op(4)  // ADD
	CMD_SUB     = Op(5)  // SUB
	CMD_MUL     = Op(6)  // MUL
	CMD_DIV     = Op(7)  // DIV
	CMD_MOD     = Op(8)  // MOD
	CMD_POW     = Op(9)  // POW
	CMD_STDOUT  = Op(10) // STDOUT
	CMD_ENDL    = Op(11) // ENDL
	CMD_SETJMPP = Op(12) // SETJMPP
	CMD_JMP     = Op(13) // JMP
	CMD_JMPIF   = Op(14) // JMPIF
	CMD_STRLEN  = Op(15) // STRLEN
	CMD_STRAPP  = Op(16) // STRAPP
	CMD_CHARAT  = Op(17) // CHARAT
	CMD_SPACE   = Op(18) // SPACE

	CMP_EQ  = Op(19) // EQ
	CMP_NEQ = Op(20) // NEQ
	CMP_GT  = Op(21) // GT
	CMP_LT  = Op(22) // LT
	CMP_GTE = Op(23) // GTE
	CMP_LTE = Op(24) // LTE

	LIT_NUMBER = Op(25) // NUMBER
	LIT_STRING = Op(26) // STRING
)

// IsCommand returns true if the op names a command.
func (op Op) IsCommand() bool {
	return op >= CMD_MOV && op <= CMD_SPACE
}

// IsCompare returns true if the op names a comparator.
func (op Op) IsCompare() bool {
	return op >= CMP_EQ && op <= CMP_LTE
}

// Commands maps command keywords to their ops.
var Commands = map[string]Op{
	"mov":     CMD_MOV,
	"cpy":     CMD_CPY,
	"set":     CMD_SET,
	"add":     CMD_ADD,
	"sub":     CMD_SUB,
	"mul":     CMD_MUL,
	"div":     CMD_DIV,
	"mod":     CMD_MOD,
	"pow":     CMD_POW,
	"stdout":  CMD_STDOUT,
	"endl":    CMD_ENDL,
	"setjmpp": CMD_SETJMPP,
	"jmp":     CMD_JMP,
	"jmpif":   CMD_JMPIF,
	"strlen":  CMD_STRLEN,
	"strapp":  CMD_STRAPP,
	"charat":  CMD_CHARAT,
	",":       CMD_SPACE,
}

// Comparators maps comparison symbols to their ops.
var Comparators = map[string]Op{
	"=":  CMP_EQ,
	"!=": CMP_NEQ,
	">":  CMP_GT,
	"<":  CMP_LT,
	">=": CMP_GTE,
	"<=": CMP_LTE,
}

// IsReserved returns true if word collides with a command keyword.
func IsReserved(word string) bool {
	_, ok := Commands[word]
	return ok
}

// Token is a single lexical unit of a source line.
type Token struct {
	Kind  Kind  // Lexical class.
	Op    Op    // Refinement, OP_NONE for registers, comments and line ends.
	Value Value // Payload.
}

// Command creates a command token for a keyword.
func Command(op Op, text string) Token {
	return Token{Kind: KIND_COMMAND, Op: op, Value: String(text)}
}

// Register creates a register token.
func Register(name string) Token {
	return Token{Kind: KIND_REGISTER, Value: String(name)}
}

// NumberLiteral creates a numeric literal token.
func NumberLiteral(value float64) Token {
	return Token{Kind: KIND_LITERAL, Op: LIT_NUMBER, Value: Number(value)}
}

// StringLiteral creates a string literal token, without quotes.
func StringLiteral(value string) Token {
	return Token{Kind: KIND_LITERAL, Op: LIT_STRING, Value: String(value)}
}

// Comment creates a full-line comment token.
func Comment(text string) Token {
	return Token{Kind: KIND_COMMENT, Value: String(text)}
}

// EndLine creates a line terminator token.
func EndLine() Token {
	return Token{Kind: KIND_ENDLINE, Value: String("\n")}
}

// Compare creates a comparator token.
func Compare(op Op, text string) Token {
	return Token{Kind: KIND_COMPARE, Op: op, Value: String(text)}
}

// Text returns the textual payload of the token.
func (tok Token) Text() string {
	return tok.Value.Str
}

// Source reconstructs the source text of the token.
func (tok Token) Source() string {
	switch {
	case tok.Kind == KIND_ENDLINE:
		return "\n"
	case tok.Op == LIT_STRING:
		return "'" + tok.Value.Str + "'"
	default:
		return tok.Value.String()
	}
}

// Describe returns the kind of the token, with its refinement if any.
func (tok Token) Describe() string {
	if tok.Op == OP_NONE {
		return tok.Kind.String()
	}

	return tok.Kind.String() + "<" + tok.Op.String() + ">"
}

// String returns a debugging representation of the token.
func (tok Token) String() string {
	value := strings.ReplaceAll(tok.Value.String(), "\n", "\\n")
	return tok.Describe() + ": \"" + value + "\""
}

// Source reconstructs the source text of a line of tokens.
func Source(tokens []Token) string {
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, tok.Source())
	}

	return strings.TrimRight(strings.Join(words, " "), " \n")
}

// Describe returns the kinds of a line of tokens.
func Describe(tokens []Token) string {
	kinds := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Describe())
	}

	return strings.Join(kinds, " ")
}
