package io

// Queue is a FIFO of values. It is a Port on its own, receiving what it
// was sent.
type Queue struct {
	Capacity int // Capacity in values; zero is unbounded.

	Data []int64
}

var _ Port = (*Queue)(nil)

// Reset empties the queue.
func (q *Queue) Reset() {
	q.Data = q.Data[:0]
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	return len(q.Data)
}

// Push appends a value to the queue.
// Returns ErrChannelFull if the queue has reached capacity.
func (q *Queue) Push(value int64) (err error) {
	if q.Capacity > 0 && len(q.Data) >= q.Capacity {
		err = ErrChannelFull
		return
	}

	q.Data = append(q.Data, value)
	return
}

// Pop removes the oldest value from the queue.
func (q *Queue) Pop() (value int64, ok bool) {
	if len(q.Data) == 0 {
		return
	}

	value = q.Data[0]
	q.Data = q.Data[1:]
	ok = true
	return
}

// Send pushes a value onto the queue.
func (q *Queue) Send(value int64) error {
	return q.Push(value)
}

// Receive pops a value from the queue.
func (q *Queue) Receive() (value int64, ok bool, err error) {
	value, ok = q.Pop()
	return
}

// Link is a Port that sends to one queue and receives from another.
// Two machines exchange values by sharing a pair of queues crosswise.
type Link struct {
	In  *Queue
	Out *Queue
}

var _ Port = (*Link)(nil)

// Send pushes a value onto the outbound queue.
func (link *Link) Send(value int64) (err error) {
	if link.Out == nil {
		err = ErrChannelClosed
		return
	}

	return link.Out.Push(value)
}

// Receive pops a value from the inbound queue.
func (link *Link) Receive() (value int64, ok bool, err error) {
	if link.In == nil {
		err = ErrChannelClosed
		return
	}

	value, ok = link.In.Pop()
	return
}
