package emulator

import (
	"errors"

	"github.com/ezrec/cnstr/translate"
)

var f = translate.From

var (
	ErrPredefineType = errors.New(f("expression must be a number or a string"))
)

// ErrPredefine indicates a register preset that could not be evaluated.
type ErrPredefine struct {
	Register string
	Expr     string
	Err      error
}

func (err *ErrPredefine) Error() string {
	return f("predefine %v=%v: %v", err.Register, err.Expr, err.Err)
}

func (err *ErrPredefine) Unwrap() error {
	return err.Err
}
