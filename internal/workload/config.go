package workload

import (
	"time"

	"github.com/pingcap/errors"
)

// DefaultProgressInterval is how often progress is logged when unset.
const DefaultProgressInterval = time.Second

// Config describes one producer/consumer run.
type Config struct {
	// Producers is the number of goroutines pushing items.
	Producers int
	// Consumers is the number of goroutines popping items.
	Consumers int
	// PerProducer is how many items each producer pushes.
	PerProducer int
	// ProgressInterval is the minimum time between progress log lines.
	ProgressInterval time.Duration
	// CheckOrder makes Verify fail when a consumer sees a producer's items
	// out of push order. Only FIFO strategies guarantee this.
	CheckOrder bool
}

// Validate checks the config and fills in defaults.
func (c *Config) Validate() error {
	if c.Producers <= 0 {
		return errors.Errorf("producers must be greater than zero, got %d", c.Producers)
	}
	if c.Consumers <= 0 {
		return errors.Errorf("consumers must be greater than zero, got %d", c.Consumers)
	}
	if c.PerProducer < 0 {
		return errors.Errorf("items per producer must not be negative, got %d", c.PerProducer)
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = DefaultProgressInterval
	}
	return nil
}
