// Package mailbox provides an unbounded FIFO channel.
package mailbox

// Mailbox forwards everything written to In to Out, buffering without limit
// so that a sender never waits for a slow receiver. Closing In closes Out once
// the buffer has been drained.
type Mailbox[T any] struct {
	in  chan T
	out chan T
}

func New[T any]() *Mailbox[T] {
	m := &Mailbox[T]{
		in:  make(chan T),
		out: make(chan T),
	}
	go m.forward()
	return m
}

func (m *Mailbox[T]) In() chan<- T {
	return m.in
}

func (m *Mailbox[T]) Out() <-chan T {
	return m.out
}

func (m *Mailbox[T]) Close() {
	close(m.in)
}

func (m *Mailbox[T]) forward() {
	defer close(m.out)
	var queue []T
	in := m.in
	for in != nil || len(queue) > 0 {
		var (
			out  chan T
			head T
		)
		if len(queue) > 0 {
			out = m.out
			head = queue[0]
		}
		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			queue = append(queue, v)
		case out <- head:
			var zero T
			queue[0] = zero
			queue = queue[1:]
		}
	}
}
