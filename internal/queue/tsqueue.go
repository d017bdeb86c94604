package queue

import (
	"sync"

	"github.com/edwingeng/deque"
	"go.uber.org/zap"
)

// TSQueue is an unbounded FIFO safe for any number of producers and consumers.
//
// All access to the underlying deque happens with mu held. The wait-and-pop
// family is the only place that gives up mu while blocked, through cond.Wait.
// Every successful push signals exactly one waiter; which waiter wakes is
// unspecified, but elements always leave in the order they arrived.
type TSQueue[T any] struct {
	// mu protects data, because deque is not thread-safe.
	mu   sync.Mutex
	cond *sync.Cond
	data deque.Deque

	logger *zap.Logger
}

// Option configures a TSQueue.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for misuse and lifecycle messages.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates an empty TSQueue.
func New[T any](opts ...Option) *TSQueue[T] {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return newTSQueue[T](deque.NewDeque(), o.logger)
}

func newTSQueue[T any](data deque.Deque, logger *zap.Logger) *TSQueue[T] {
	q := &TSQueue[T]{
		data:   data,
		logger: logger,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Clone returns an independent queue holding the elements q holds right now.
//
// q's lock is held only while its contents are copied. The clone has its own
// lock and condition, so later pushes or pops on either queue are not seen by
// the other.
func (q *TSQueue[T]) Clone() *TSQueue[T] {
	snapshot := deque.NewDeque()
	q.mu.Lock()
	q.data.Range(func(_ int, v deque.Elem) bool {
		snapshot.PushBack(v)
		return true
	})
	q.mu.Unlock()

	q.logger.Debug("queue cloned", zap.Int("len", snapshot.Len()))
	return newTSQueue[T](snapshot, q.logger)
}

// Push copies v into the tail of the queue and wakes one blocked consumer.
func (q *TSQueue[T]) Push(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.data.PushBack(v)
	q.cond.Signal()
}

// PushFrom moves *src into the tail of the queue and resets *src to the zero
// value, so the caller no longer holds the element.
//
// A nil src has no value to move; PushFrom then returns ErrInvalidOperation
// and the queue is left unchanged.
func (q *TSQueue[T]) PushFrom(src *T) error {
	if src == nil {
		q.logger.Warn("push from nil source rejected")
		return ErrInvalidOperation.GenWithStackByArgs("push from nil source")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.data.PushBack(*src)
	var zero T
	*src = zero
	q.cond.Signal()
	return nil
}

// PushMoving moves *src into the tail of the queue without checking src.
// The caller guarantees src is non-nil.
func (q *TSQueue[T]) PushMoving(src *T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.data.PushBack(*src)
	var zero T
	*src = zero
	q.cond.Signal()
}

// TryPush pushes v. The queue is unbounded, so it always reports true.
func (q *TSQueue[T]) TryPush(v T) bool {
	q.Push(v)
	return true
}

// elemAs converts a deque element back to T. A nil stored for an
// interface-typed T comes back as T's zero value; any other element must be
// a T.
func elemAs[T any](e deque.Elem) T {
	if e == nil {
		var noVal T
		return noVal
	}
	return e.(T)
}

// waitFront blocks until the queue is non-empty and removes the head.
// mu must be held by the caller.
func (q *TSQueue[T]) waitFront() T {
	// Re-check after every wake: Wait may return with the queue still empty.
	for q.data.Empty() {
		q.cond.Wait()
	}
	return elemAs[T](q.data.PopFront())
}

// WaitAndPop blocks until an element is available, then removes and returns it.
func (q *TSQueue[T]) WaitAndPop() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.waitFront()
}

// Pop is WaitAndPop.
func (q *TSQueue[T]) Pop() T {
	return q.WaitAndPop()
}

// WaitAndPopInto blocks until an element is available, then removes it into out.
func (q *TSQueue[T]) WaitAndPopInto(out *T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	*out = q.waitFront()
}

// WaitAndPopShared blocks until an element is available, then removes it and
// returns a handle to it. The handle can be shared freely between goroutines;
// the element lives as long as any of them holds it.
func (q *TSQueue[T]) WaitAndPopShared() *T {
	q.mu.Lock()
	defer q.mu.Unlock()

	v := q.waitFront()
	return &v
}

// TryPop removes and returns the head element without blocking.
// Returns false if the queue is empty.
func (q *TSQueue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.data.Empty() {
		var noVal T
		return noVal, false
	}
	return elemAs[T](q.data.PopFront()), true
}

// TryPopInto removes the head element into out without blocking.
// Returns false, leaving out untouched, if the queue is empty.
func (q *TSQueue[T]) TryPopInto(out *T) bool {
	v, ok := q.TryPop()
	if !ok {
		return false
	}
	*out = v
	return true
}

// TryPopShared removes the head element without blocking and returns a
// handle to it, or nil if the queue is empty.
func (q *TSQueue[T]) TryPopShared() *T {
	v, ok := q.TryPop()
	if !ok {
		return nil
	}
	return &v
}

// Empty reports whether the queue holds no elements at the instant of the check.
func (q *TSQueue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.data.Empty()
}

// Len returns the number of queued elements at the instant of the check.
func (q *TSQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.data.Len()
}

// ToSlice returns a copy of the queued elements in FIFO order.
func (q *TSQueue[T]) ToSlice() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]T, 0, q.data.Len())
	q.data.Range(func(_ int, v deque.Elem) bool {
		out = append(out, elemAs[T](v))
		return true
	})
	return out
}

var _ Queue[int] = (*TSQueue[int])(nil)
