package queue

import (
	"runtime"
	"sync/atomic"

	"github.com/pingcap/errors"
	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// ShardedQueue is a bounded lock-free MPSC (Multi-Producer Single-Consumer)
// queue over go-lock-free-ring's ShardedRing.
//
// Producers are spread over the shards round-robin to cut contention.
// Elements leave each shard in the order they entered it, but there is no
// ordering across shards; build it with one shard when strict FIFO matters.
//
// Only ONE goroutine may call Pop or TryPop.
type ShardedQueue[T any] struct {
	r      *ring.ShardedRing
	shards uint64
	next   atomic.Uint64
	count  atomic.Int64
}

// NewSharded creates a ShardedQueue with the given total capacity split over
// shards shards.
func NewSharded[T any](capacity, shards int) (*ShardedQueue[T], error) {
	if capacity <= 0 || shards <= 0 {
		return nil, errors.Errorf("sharded queue needs positive capacity and shards, got %d and %d", capacity, shards)
	}
	r, err := ring.NewShardedRing(uint64(capacity), uint64(shards))
	if err != nil {
		return nil, errors.Annotatef(err, "create sharded ring capacity=%d shards=%d", capacity, shards)
	}
	return &ShardedQueue[T]{r: r, shards: uint64(shards)}, nil
}

func (q *ShardedQueue[T]) producerID() uint64 {
	return (q.next.Add(1) - 1) % q.shards
}

// TryPush adds v to the next shard.
// Returns false if that shard is full.
func (q *ShardedQueue[T]) TryPush(v T) bool {
	// Count before the element becomes visible so a consumer never
	// decrements below the number of queued elements.
	q.count.Add(1)
	if !q.r.Write(q.producerID(), v) {
		q.count.Add(-1)
		return false
	}
	return true
}

// Push adds v, yielding while the chosen shard is full.
func (q *ShardedQueue[T]) Push(v T) {
	q.count.Add(1)
	pid := q.producerID()
	for !q.r.Write(pid, v) {
		runtime.Gosched()
	}
}

// TryPop removes and returns an element.
// Returns false if every shard is empty.
func (q *ShardedQueue[T]) TryPop() (T, bool) {
	e, ok := q.r.TryRead()
	if !ok {
		var zero T
		return zero, false
	}
	q.count.Add(-1)
	v, _ := e.(T)
	return v, true
}

// Pop removes an element, yielding while every shard is empty.
func (q *ShardedQueue[T]) Pop() T {
	for {
		if v, ok := q.TryPop(); ok {
			return v
		}
		runtime.Gosched()
	}
}

// Empty reports whether no element is queued.
//
// A push is counted before its element is readable, so under concurrent
// pushes Empty may report false while TryPop still finds nothing. It does
// not report true while a pushed element is still queued.
func (q *ShardedQueue[T]) Empty() bool {
	return q.count.Load() <= 0
}

var _ Queue[int] = (*ShardedQueue[int])(nil)
