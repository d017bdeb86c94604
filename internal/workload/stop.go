package workload

import "sync/atomic"

// Stopper tells producers to stop pushing early.
//
// Consumers are never interrupted: they keep draining until they receive
// their stop sentinel, so nothing already pushed is lost.
type Stopper struct {
	stopped atomic.Bool
}

// NewStopper creates a Stopper that has not fired.
func NewStopper() *Stopper {
	return &Stopper{}
}

// Stop fires the stopper. Safe to call multiple times.
func (s *Stopper) Stop() {
	s.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (s *Stopper) Stopped() bool {
	return s.stopped.Load()
}
