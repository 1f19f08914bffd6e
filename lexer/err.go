package lexer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ezrec/cnstr/translate"
)

var f = translate.From

var (
	ErrTokenInvalid   = errors.New(f("invalid token"))
	ErrRegisterLength = errors.New(f("register must be in the format 'rX', 'rXX'"))
	ErrRegisterName   = errors.New(f("register must be alphanumeric, lowercase"))
)

// ErrWord attaches the offending word to a lexical error.
type ErrWord struct {
	Word string
	Err  error
}

func (err *ErrWord) Error() string {
	return f("%v: '%v'", err.Err, err.Word)
}

func (err *ErrWord) Unwrap() error {
	return err.Err
}

// ErrSyntax is a lexical error on a source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("Error on line %v\n - %v", strconv.Itoa(err.LineNo), err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrTokenize is the batch of all lexical errors in a source.
type ErrTokenize struct {
	Errors []error
}

func (err *ErrTokenize) Error() string {
	lines := []string{f("Encountered %v errors while tokenizing:", strconv.Itoa(len(err.Errors)))}
	for _, e := range err.Errors {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}

func (err *ErrTokenize) Unwrap() []error {
	return err.Errors
}
