package workload

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// checkEvery is how many observations pass between clock reads.
const checkEvery = 1024

// progress counts consumed items and logs the running rate at most once per
// interval. Consumers share one progress; the clock is read only every
// checkEvery observations and a compare-and-swap on lastTick makes sure a
// given interval is logged once.
type progress struct {
	logger   *zap.Logger
	interval int64
	start    time.Time

	count    atomic.Int64
	lastTick atomic.Int64

	// expected is the total to drain, or -1 until producers are done.
	expected  atomic.Int64
	drained   chan struct{}
	drainOnce sync.Once
}

func newProgress(logger *zap.Logger, interval time.Duration) *progress {
	p := &progress{
		logger:   logger,
		interval: int64(interval),
		start:    time.Now(),
		drained:  make(chan struct{}),
	}
	p.lastTick.Store(p.start.UnixNano())
	p.expected.Store(-1)
	return p
}

// observe records one consumed item.
func (p *progress) observe() {
	n := p.count.Add(1)
	if e := p.expected.Load(); e >= 0 && n >= e {
		p.markDrained()
	}
	if n%checkEvery != 0 {
		return
	}
	now := time.Now().UnixNano()
	last := p.lastTick.Load()
	if now-last < p.interval || !p.lastTick.CompareAndSwap(last, now) {
		return
	}
	elapsed := time.Since(p.start)
	p.logger.Info("consumer progress",
		zap.Int64("received", n),
		zap.Duration("elapsed", elapsed),
		zap.Float64("itemsPerSec", float64(n)/elapsed.Seconds()))
}

func (p *progress) markDrained() {
	p.drainOnce.Do(func() { close(p.drained) })
}

// expect sets the number of items that will ever be observed. The channel
// returned is closed once that many have been observed.
func (p *progress) expect(total int64) <-chan struct{} {
	p.expected.Store(total)
	if p.count.Load() >= total {
		p.markDrained()
	}
	return p.drained
}

func (p *progress) received() int64 {
	return p.count.Load()
}
