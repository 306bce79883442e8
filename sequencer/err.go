package sequencer

import (
	"errors"

	"github.com/ezrec/hvi/engine"
	"github.com/ezrec/hvi/translate"
)

var f = translate.From

var (
	// Scope errors
	ErrNoOpenSequence     = errors.New(f("no open sequence"))
	ErrScopeMismatch      = errors.New(f("scope mismatch"))
	ErrUnclosedChildScope = errors.New(f("unclosed child scope"))
	ErrProgramFinalized   = errors.New(f("program finalized"))

	// Statement errors
	ErrDelayInvalid      = errors.New(f("delay invalid"))
	ErrComparatorInvalid = errors.New(f("comparator invalid"))
	ErrActionsEmpty      = errors.New(f("no actions"))
	ErrChannelInvalid    = errors.New(f("channel invalid"))

	// Resolution errors, shared with the engine table.
	ErrNameEmpty          = engine.ErrNameEmpty
	ErrDuplicateEngine    = engine.ErrDuplicateEngine
	ErrDuplicateRegister  = engine.ErrDuplicateRegister
	ErrDuplicateAction    = engine.ErrDuplicateAction
	ErrUnknownEngine      = engine.ErrUnknownEngine
	ErrUnknownRegister    = engine.ErrUnknownRegister
	ErrUnknownAction      = engine.ErrUnknownAction
	ErrValueRange         = engine.ErrValueRange
	ErrDeclarationsSealed = engine.ErrDeclarationsSealed
)

// ErrBuild reports a rejected builder call.
type ErrBuild struct {
	Caller string // file:line of the builder call.
	Op     string // Builder operation.
	Engine string // Engine the call was scoped to, if any.
	Name   string // Statement, block or register name, if any.
	Err    error
}

func (err *ErrBuild) Error() string {
	switch {
	case len(err.Engine) == 0 && len(err.Name) == 0:
		return f("%v: %v: %v", err.Caller, err.Op, err.Err)
	case len(err.Engine) == 0:
		return f("%v: %v '%v': %v", err.Caller, err.Op, err.Name, err.Err)
	default:
		return f("%v: %v %v '%v': %v", err.Caller, err.Op, err.Engine, err.Name, err.Err)
	}
}

func (err *ErrBuild) Unwrap() error {
	return err.Err
}
