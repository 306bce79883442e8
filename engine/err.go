package engine

import (
	"errors"

	"github.com/ezrec/hvi/translate"
)

var f = translate.From

var (
	// Declaration errors
	ErrNameEmpty          = errors.New(f("name empty"))
	ErrDuplicateEngine    = errors.New(f("engine duplicated"))
	ErrDuplicateRegister  = errors.New(f("register duplicated"))
	ErrDuplicateAction    = errors.New(f("action duplicated"))
	ErrDuplicateEvent     = errors.New(f("event duplicated"))
	ErrDeclarationsSealed = errors.New(f("declarations sealed"))

	// Lookup errors
	ErrUnknownEngine   = errors.New(f("engine unknown"))
	ErrUnknownRegister = errors.New(f("register unknown"))
	ErrUnknownAction   = errors.New(f("action unknown"))
	ErrUnknownEvent    = errors.New(f("event unknown"))

	// Value errors
	ErrValueRange = errors.New(f("value out of range"))
)

// ErrDeclare carries the engine and name a declaration or lookup failed on.
type ErrDeclare struct {
	Engine string
	Name   string
	Err    error
}

func (err *ErrDeclare) Error() string {
	if len(err.Name) == 0 {
		return f("engine '%v' %v", err.Engine, err.Err)
	}
	return f("engine '%v' '%v' %v", err.Engine, err.Name, err.Err)
}

func (err *ErrDeclare) Unwrap() error {
	return err.Err
}
