package main

import (
	"github.com/pingcap/errors"
	"go.uber.org/zap"

	"github.com/randomizedcoder/tsqueue/internal/queue"
)

const (
	strategyTSQueue = "tsqueue"
	strategyChannel = "channel"
	strategySharded = "sharded"
)

// newQueue builds the named strategy. size bounds the channel and sharded
// strategies; consumers is checked against strategies with a single consumer.
func newQueue[T any](strategy string, size, consumers int, logger *zap.Logger) (queue.Queue[T], error) {
	switch strategy {
	case strategyTSQueue:
		return queue.New[T](queue.WithLogger(logger)), nil
	case strategyChannel:
		if size <= 0 {
			return nil, errors.Errorf("channel strategy needs a positive size, got %d", size)
		}
		return queue.NewChannel[T](size), nil
	case strategySharded:
		if consumers != 1 {
			return nil, errors.Errorf("sharded strategy allows exactly one consumer, got %d", consumers)
		}
		q, err := queue.NewSharded[T](size, 4)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return q, nil
	default:
		return nil, errors.Errorf("unknown strategy %q, can be %s, %s or %s",
			strategy, strategyTSQueue, strategyChannel, strategySharded)
	}
}
