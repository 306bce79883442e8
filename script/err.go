package script

import (
	"errors"

	"go.starlark.net/syntax"

	"github.com/ezrec/hvi/translate"
)

var f = translate.From

var (
	ErrUnknownConstant = errors.New(f("unknown constant"))
	ErrOperandType     = errors.New(f("operand must be an int or a register name"))
	ErrAmountType      = errors.New(f("amplitude must be a number"))
)

// ErrScript locates a failed builtin call in the script.
type ErrScript struct {
	Pos  syntax.Position
	Func string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("%v: %v: %v", err.Pos.String(), err.Func, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
