package io

import (
	"bufio"
	"io"
	"strconv"
)

// Tape provides a Port over byte streams.
// Sent values are written to Output as decimal text, one per line.
// Received values are read from Input as whitespace separated decimal text.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
	buffer  []byte
}

var _ Port = (*Tape)(nil)

// Rewind discards any buffered input.
func (tc *Tape) Rewind() {
	tc.scanner = nil
}

// Send writes a value and a newline to the output stream.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	tc.buffer = strconv.AppendInt(tc.buffer[:0], value, 10)
	tc.buffer = append(tc.buffer, '\n')
	_, err = tc.Output.Write(tc.buffer)

	return
}

// Receive reads the next value from the input stream.
// The end of input is ErrChannelClosed.
func (tc *Tape) Receive() (value int64, ok bool, err error) {
	if tc.Input == nil {
		err = ErrChannelClosed
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(bufio.ScanWords)
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = ErrChannelClosed
		}
		return
	}

	word := tc.scanner.Text()
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	ok = true
	return
}
