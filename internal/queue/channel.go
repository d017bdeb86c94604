package queue

// ChannelQueue is a bounded Queue backed by a buffered channel.
//
// Push blocks while the buffer is full and Pop blocks while it is empty.
// TryPush and TryPop use select with default and never block. It is safe for
// any number of producers and consumers.
type ChannelQueue[T any] struct {
	ch chan T
}

// NewChannel creates a ChannelQueue holding at most size elements.
func NewChannel[T any](size int) *ChannelQueue[T] {
	return &ChannelQueue[T]{
		ch: make(chan T, size),
	}
}

// Push adds v at the tail, blocking while the queue is full.
func (q *ChannelQueue[T]) Push(v T) {
	q.ch <- v
}

// Pop removes the head element, blocking while the queue is empty.
func (q *ChannelQueue[T]) Pop() T {
	return <-q.ch
}

// TryPush adds v at the tail.
// Returns false if the queue is full.
func (q *ChannelQueue[T]) TryPush(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// TryPop removes and returns the head element.
// Returns false if the queue is empty.
func (q *ChannelQueue[T]) TryPop() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Empty reports whether the buffer holds no elements.
func (q *ChannelQueue[T]) Empty() bool {
	return len(q.ch) == 0
}

// Len returns the current number of items in the queue.
func (q *ChannelQueue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the capacity of the queue.
func (q *ChannelQueue[T]) Cap() int {
	return cap(q.ch)
}

var _ Queue[int] = (*ChannelQueue[int])(nil)
