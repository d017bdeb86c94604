// Package workload drives a queue with concurrent producers and consumers and
// checks that every pushed item is delivered exactly once.
package workload

import (
	"sync"
	"time"

	"github.com/pingcap/errors"
	"go.uber.org/zap"

	"github.com/randomizedcoder/tsqueue/internal/queue"
)

// drainStall is how long Run waits without any consumer progress before it
// stops consumers that have not received every pushed item.
const drainStall = 5 * time.Second

// stopProducer marks the sentinel item that ends a consumer.
const stopProducer = -1

// Item is a tagged element: the producer that pushed it and its position in
// that producer's sequence.
type Item struct {
	Producer int
	Seq      int
}

func (it Item) isStop() bool {
	return it.Producer == stopProducer
}

// Report summarizes a run.
type Report struct {
	Produced        int
	Received        int
	Duplicates      int
	Missing         int
	OrderViolations int
	OrderChecked    bool
	Elapsed         time.Duration
}

// Verify returns an error if items were lost or duplicated, or, when order
// was checked, delivered out of order.
func (r *Report) Verify() error {
	if r.Missing > 0 || r.Duplicates > 0 {
		return errors.Errorf("delivery mismatch: produced %d, received %d, missing %d, duplicates %d",
			r.Produced, r.Received, r.Missing, r.Duplicates)
	}
	if r.OrderChecked && r.OrderViolations > 0 {
		return errors.Errorf("%d items delivered out of push order", r.OrderViolations)
	}
	return nil
}

// consumerLog is what one consumer saw, in arrival order.
type consumerLog struct {
	items []Item
}

// Run pushes cfg.Producers*cfg.PerProducer items into q and drains them with
// cfg.Consumers goroutines using the blocking Pop.
//
// Once every producer is done and consumers have received every pushed item,
// one stop sentinel per consumer is pushed. Waiting for the drain first keeps
// a sentinel from overtaking real items on strategies without a global
// order, such as a multi-shard ShardedQueue. A
// fired stop makes producers quit early; the report then covers only what
// was pushed. stop may be nil.
func Run(cfg Config, q queue.Queue[Item], logger *zap.Logger, stop *Stopper) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if stop == nil {
		stop = NewStopper()
	}

	logger.Info("workload started",
		zap.Int("producers", cfg.Producers),
		zap.Int("consumers", cfg.Consumers),
		zap.Int("perProducer", cfg.PerProducer))

	start := time.Now()
	prog := newProgress(logger, cfg.ProgressInterval)

	logs := make([]consumerLog, cfg.Consumers)
	var consumers sync.WaitGroup
	for c := 0; c < cfg.Consumers; c++ {
		consumers.Add(1)
		go func(c int) {
			defer consumers.Done()
			for {
				it := q.Pop()
				if it.isStop() {
					return
				}
				logs[c].items = append(logs[c].items, it)
				prog.observe()
			}
		}(c)
	}

	produced := make([]int, cfg.Producers)
	var producers sync.WaitGroup
	for p := 0; p < cfg.Producers; p++ {
		producers.Add(1)
		go func(p int) {
			defer producers.Done()
			for s := 0; s < cfg.PerProducer; s++ {
				if stop.Stopped() {
					return
				}
				q.Push(Item{Producer: p, Seq: s})
				produced[p]++
			}
		}(p)
	}
	producers.Wait()

	total := 0
	for _, n := range produced {
		total += n
	}
	if !waitDrained(prog.expect(int64(total)), prog, drainStall) {
		logger.Warn("consumers stalled before draining, stopping them anyway",
			zap.Int("produced", total),
			zap.Int64("received", prog.received()))
	}

	for c := 0; c < cfg.Consumers; c++ {
		q.Push(Item{Producer: stopProducer})
	}
	consumers.Wait()

	report := summarize(produced, logs)
	report.OrderChecked = cfg.CheckOrder
	report.Elapsed = time.Since(start)

	logger.Info("workload finished",
		zap.Int("produced", report.Produced),
		zap.Int64("received", prog.received()),
		zap.Int("missing", report.Missing),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("orderViolations", report.OrderViolations),
		zap.Duration("elapsed", report.Elapsed))
	return report, nil
}

// waitDrained waits for drained to close. It gives up and returns false once
// no item has been received for a whole stall period.
func waitDrained(drained <-chan struct{}, prog *progress, stall time.Duration) bool {
	last := prog.received()
	for {
		select {
		case <-drained:
			return true
		case <-time.After(stall):
			n := prog.received()
			if n == last {
				return false
			}
			last = n
		}
	}
}

func summarize(produced []int, logs []consumerLog) *Report {
	r := &Report{}
	seen := make(map[Item]int)
	for _, l := range logs {
		last := make(map[int]int)
		for _, it := range l.items {
			r.Received++
			seen[it]++
			if prev, ok := last[it.Producer]; ok && it.Seq <= prev {
				r.OrderViolations++
			}
			last[it.Producer] = it.Seq
		}
	}

	for p, n := range produced {
		r.Produced += n
		for s := 0; s < n; s++ {
			if seen[Item{Producer: p, Seq: s}] == 0 {
				r.Missing++
			}
		}
	}
	for _, n := range seen {
		if n > 1 {
			r.Duplicates += n - 1
		}
	}
	return r
}
