package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	value, ok := q.Pop()
	assert.False(ok)
	assert.Equal(int64(0), value)

	for n := range 5 {
		assert.NoError(q.Push(int64(n) - 2))
	}
	assert.Equal(5, q.Len())

	for n := range 5 {
		value, ok = q.Pop()
		assert.True(ok)
		assert.Equal(int64(n)-2, value)
	}
	assert.Equal(0, q.Len())

	_, ok = q.Pop()
	assert.False(ok)
}

func TestQueue_Capacity(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{Capacity: 2}
	assert.NoError(q.Push(1))
	assert.NoError(q.Push(2))
	assert.Equal(ErrChannelFull, q.Push(3))

	value, ok := q.Pop()
	assert.True(ok)
	assert.Equal(int64(1), value)
	assert.NoError(q.Push(3))

	q.Reset()
	assert.Equal(0, q.Len())
	assert.NoError(q.Push(4))
}

func TestQueue_Port(t *testing.T) {
	assert := assert.New(t)

	var port Port = &Queue{}
	assert.NoError(port.Send(42))

	value, ok, err := port.Receive()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(int64(42), value)

	_, ok, err = port.Receive()
	assert.NoError(err)
	assert.False(ok)
}

func TestLink(t *testing.T) {
	assert := assert.New(t)

	q0 := &Queue{}
	q1 := &Queue{}
	p0 := &Link{In: q0, Out: q1}
	p1 := &Link{In: q1, Out: q0}

	assert.NoError(p0.Send(7))
	assert.NoError(p0.Send(8))
	assert.Equal(2, q1.Len())

	_, ok, err := p0.Receive()
	assert.NoError(err)
	assert.False(ok)

	value, ok, err := p1.Receive()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(int64(7), value)

	assert.NoError(p1.Send(-1))
	value, ok, _ = p0.Receive()
	assert.True(ok)
	assert.Equal(int64(-1), value)

	broken := &Link{}
	assert.Equal(ErrChannelClosed, broken.Send(1))
	_, _, err = broken.Receive()
	assert.Equal(ErrChannelClosed, err)
}
