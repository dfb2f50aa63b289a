package timing

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// StageClock records wall-clock durations for the pipeline's coarse stages.
// It is purely observational: nothing reads the clock to make decisions.
type StageClock struct {
	logger    *zap.Logger
	mu        sync.Mutex
	started   map[string]time.Time
	durations map[string]time.Duration
	order     []string
	runStart  time.Time
}

// NewStageClock creates a new StageClock
func NewStageClock(logger *zap.Logger) *StageClock {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StageClock{
		logger:    logger,
		started:   make(map[string]time.Time),
		durations: make(map[string]time.Duration),
		runStart:  time.Now(),
	}
}

// Start begins timing the named stage
func (c *StageClock) Start(stage string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started[stage] = time.Now()
}

// Stop completes timing the named stage and returns its duration. Stopping a
// stage that was never started records a zero duration.
func (c *StageClock) Stop(stage string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	var d time.Duration
	if start, ok := c.started[stage]; ok {
		d = time.Since(start)
		delete(c.started, stage)
	}

	if _, seen := c.durations[stage]; !seen {
		c.order = append(c.order, stage)
	}
	c.durations[stage] += d

	c.logger.Debug("stage completed",
		zap.String("stage", stage),
		zap.Duration("duration", d))

	return d
}

// Duration returns the recorded duration for the named stage.
func (c *StageClock) Duration(stage string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.durations[stage]
}

// LogSummary logs all recorded stage durations plus the total run time.
func (c *StageClock) LogSummary() {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields := make([]zap.Field, 0, len(c.order)+1)
	for _, stage := range c.order {
		fields = append(fields, zap.Duration(stage, c.durations[stage]))
	}
	fields = append(fields, zap.Duration("total", time.Since(c.runStart)))

	c.logger.Info("pipeline stage timing", fields...)
}
