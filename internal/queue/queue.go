// Package queue provides FIFO queue strategies behind a common capability set.
//
// The primary implementation is TSQueue, a lock-based FIFO that any number
// of producer and consumer goroutines may use concurrently:
//   - TSQueue: unbounded, one mutex plus one condition variable
//
// Alternative strategies satisfy the same Queue interface so callers can
// swap them without code changes:
//   - ChannelQueue: bounded, backed by a buffered channel
//   - RingBuffer: bounded, lock-free, single-producer single-consumer
//   - ShardedQueue: bounded, lock-free, multi-producer single-consumer
//
// # RingBuffer and ShardedQueue Safety (IMPORTANT)
//
// RingBuffer must have exactly ONE goroutine calling Push/TryPush and
// exactly ONE goroutine calling Pop/TryPop. It panics on detected misuse.
// ShardedQueue allows many producers but only ONE consumer.
package queue

// Queue is the set of operations every queue strategy exposes.
//
// Push and Pop may block, depending on the strategy. TryPush and TryPop
// never block. Empty is a snapshot and may be stale as soon as it returns
// when other goroutines are pushing or popping.
type Queue[T any] interface {
	// Push inserts v at the tail.
	Push(v T)

	// Pop removes and returns the head element.
	Pop() T

	// TryPush inserts v without blocking.
	// Returns false if the element could not be inserted.
	TryPush(v T) bool

	// TryPop removes and returns the head element without blocking.
	// Returns false if the queue is empty.
	TryPop() (T, bool)

	// Empty reports whether the queue currently holds no elements.
	Empty() bool
}
