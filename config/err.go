package config

import (
	"errors"

	"github.com/ezrec/hvi/translate"
)

var f = translate.From

var (
	ErrEmpty       = errors.New(f("empty descriptor"))
	ErrNameMissing = errors.New(f("system name missing"))
	ErrNoEngines   = errors.New(f("no engines declared"))
)

// ErrConfig reports an invalid system descriptor.
type ErrConfig struct {
	Engine string // Engine being declared, if any.
	Err    error
}

func (err *ErrConfig) Error() string {
	if len(err.Engine) == 0 {
		return f("descriptor: %v", err.Err)
	}
	return f("descriptor: engine %v: %v", err.Engine, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
