// Package io provides the value ports that carry snd and rcv traffic for a
// duet machine. Ports include an in-memory FIFO (Queue), a pair of queues
// for cross-wiring two machines (Link), and a line-oriented decimal stream
// over an io.Reader and io.Writer (Tape).
package io

// Port defines the interface between a machine and the outside world.
type Port interface {
	// Send emits a value from a snd instruction.
	Send(value int64) error
	// Receive returns the next value for a rcv instruction.
	// ok is false when no value is available yet; the machine waits.
	Receive() (value int64, ok bool, err error)
}
