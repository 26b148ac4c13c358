package depot

import (
	"log/slog"
)

// Config holds global configuration shared by every space
var Config config = config{
	maxBehaviorSteps: 256,
	defaultSeed:      1,
}

type config struct {
	logger           *slog.Logger
	maxBehaviorSteps int
	defaultSeed      uint64
}

// SetLogger sets the logger new spaces derive their logger from
func (c *config) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// SetMaxBehaviorSteps bounds the transfers a single object may take in one tick
func (c *config) SetMaxBehaviorSteps(n int) {
	if n < 1 {
		n = 1
	}
	c.maxBehaviorSteps = n
}

// SetDefaultSeed sets the seed used for spaces created without one
func (c *config) SetDefaultSeed(seed uint64) {
	c.defaultSeed = seed
}

func (c *config) Logger() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

func (c *config) MaxBehaviorSteps() int {
	return c.maxBehaviorSteps
}
