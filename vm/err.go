package vm

import (
	"errors"
	"strconv"

	"github.com/ezrec/cnstr/translate"
)

var f = translate.From

var (
	// Runtime error categories
	ErrInvalidUsage         = errors.New(f("invalid usage"))
	ErrUndeclaredJumpPoint  = errors.New(f("undeclared jump point"))
	ErrTypeMismatch         = errors.New(f("type mismatch"))
	ErrIndexOutOfBounds     = errors.New(f("index out of bounds"))
	ErrUnsupportedStatement = errors.New(f("unsupported statement"))
)

// ErrUsage is a runtime error category with a description of the misuse.
type ErrUsage struct {
	Err     error
	Message string
}

func (err *ErrUsage) Error() string {
	return err.Message
}

func (err *ErrUsage) Unwrap() error {
	return err.Err
}

// fail creates an ErrUsage for an error category.
func fail(category error, format string, args ...any) error {
	return &ErrUsage{Err: category, Message: f(format, args...)}
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int    // Logical line index.
	Line   string // Reconstructed source of the line.
	Tokens string // Token kinds of the line.
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("Error on line %v:\n - %v\n - LINE: \"%v\"\n - TOKENS: %v", strconv.Itoa(err.LineNo), err.Err, err.Line, err.Tokens)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
