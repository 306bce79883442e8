package runtime

import (
	"errors"

	"github.com/ezrec/hvi/translate"
)

var f = translate.From

var (
	ErrProgramOpen    = errors.New(f("program not built"))
	ErrNotLoaded      = errors.New(f("artifact not loaded"))
	ErrAlreadyLoaded  = errors.New(f("artifact already loaded"))
	ErrReleased       = errors.New(f("artifact released"))
	ErrIterationLimit = errors.New(f("iteration limit exceeded"))
	ErrTimeout        = errors.New(f("timeout"))
)

// ErrRuntime indicates the statement or loop a run failed at.
type ErrRuntime struct {
	Engine    string
	Statement string
	Err       error
}

func (err *ErrRuntime) Error() string {
	return f("%v '%v': %v", err.Engine, err.Statement, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
