package io

import (
	"errors"

	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull   = errors.New(f("channel full"))
	ErrChannelClosed = errors.New(f("channel closed"))
)

// ErrParseNumber is tape input that is not a decimal integer.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
