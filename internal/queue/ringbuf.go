package queue

import (
	"runtime"
	"sync/atomic"
)

// RingBuffer is a bounded lock-free SPSC (Single-Producer Single-Consumer) queue.
//
// WARNING: This queue is NOT safe for multiple producers or multiple consumers.
// Guards panic if a second producer or consumer is caught inside the ring.
// Push and Pop wait for room or data by yielding the processor.
type RingBuffer[T any] struct {
	buf  []T
	mask uint64

	// Cache line padding to prevent false sharing
	_pad0 [56]byte //nolint:unused

	head atomic.Uint64 // Written by producer, read by consumer

	_pad1 [56]byte //nolint:unused

	tail atomic.Uint64 // Written by consumer, read by producer

	_pad2 [56]byte //nolint:unused

	producing atomic.Uint32
	consuming atomic.Uint32
}

// NewRingBuffer creates a RingBuffer with room for at least size elements.
// The capacity is rounded up to the next power of 2.
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	n := uint64(1)
	for n < uint64(size) {
		n <<= 1
	}

	return &RingBuffer[T]{
		buf:  make([]T, n),
		mask: n - 1,
	}
}

func (r *RingBuffer[T]) enterProducer() {
	if !r.producing.CompareAndSwap(0, 1) {
		panic("queue: concurrent producers on SPSC RingBuffer")
	}
}

func (r *RingBuffer[T]) enterConsumer() {
	if !r.consuming.CompareAndSwap(0, 1) {
		panic("queue: concurrent consumers on SPSC RingBuffer")
	}
}

// TryPush adds v at the tail.
// Returns false if the ring is full.
func (r *RingBuffer[T]) TryPush(v T) bool {
	r.enterProducer()
	defer r.producing.Store(0)

	return r.write(v)
}

// Push adds v at the tail, yielding while the ring is full.
func (r *RingBuffer[T]) Push(v T) {
	r.enterProducer()
	defer r.producing.Store(0)

	for !r.write(v) {
		runtime.Gosched()
	}
}

func (r *RingBuffer[T]) write(v T) bool {
	head := r.head.Load()
	if head-r.tail.Load() >= uint64(len(r.buf)) {
		return false
	}
	r.buf[head&r.mask] = v
	// Publish after the slot is written.
	r.head.Store(head + 1)
	return true
}

// TryPop removes and returns the head element.
// Returns false if the ring is empty.
func (r *RingBuffer[T]) TryPop() (T, bool) {
	r.enterConsumer()
	defer r.consuming.Store(0)

	return r.read()
}

// Pop removes the head element, yielding while the ring is empty.
func (r *RingBuffer[T]) Pop() T {
	r.enterConsumer()
	defer r.consuming.Store(0)

	for {
		if v, ok := r.read(); ok {
			return v
		}
		runtime.Gosched()
	}
}

func (r *RingBuffer[T]) read() (T, bool) {
	tail := r.tail.Load()
	if tail >= r.head.Load() {
		var zero T
		return zero, false
	}
	idx := tail & r.mask
	v := r.buf[idx]
	// Drop the ring's reference so the consumer is the only owner.
	var zero T
	r.buf[idx] = zero
	r.tail.Store(tail + 1)
	return v, true
}

// Empty reports whether the ring holds no elements.
// Approximate under concurrent use.
func (r *RingBuffer[T]) Empty() bool {
	return r.Len() == 0
}

// Len returns the current number of items in the ring.
// This is an approximation and may be slightly stale.
func (r *RingBuffer[T]) Len() int {
	tail := r.tail.Load()
	head := r.head.Load()
	return int(head - tail)
}

// Cap returns the capacity of the ring.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buf)
}

var _ Queue[int] = (*RingBuffer[int])(nil)
