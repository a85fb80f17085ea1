package emulator

import (
	"errors"

	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	ErrPortMissing = errors.New(f("port missing"))
	ErrBlocked     = errors.New(f("blocked on empty port"))
	ErrTickLimit   = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Ip     uint
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d (ip %d) %v", err.LineNo, err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrConfigKey is a configuration key that is not understood.
type ErrConfigKey string

func (err ErrConfigKey) Error() string {
	return f("config key '%v' unknown", string(err))
}
