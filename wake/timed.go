package wake

import (
	"time"

	"github.com/hupe1980/fibermesh/core"
)

// TimedCondition fires on the first tick at or after its deadline. Because
// readiness is only ever evaluated on tick boundaries, durations shorter than
// one tick round up to a full tick automatically.
type TimedCondition struct {
	base
	deadline time.Time
}

// Timed returns a condition that wakes w once d has elapsed from start.
func Timed(w core.Waker, d time.Duration, start time.Time) *TimedCondition {
	return &TimedCondition{base: base{waker: w}, deadline: start.Add(d)}
}

// Deadline returns the instant the condition becomes eligible to fire.
func (c *TimedCondition) Deadline() time.Time { return c.deadline }

// Ready fires once now has reached the deadline.
func (c *TimedCondition) Ready(now time.Time) bool {
	if c.retired() || now.Before(c.deadline) {
		return false
	}
	return c.fire()
}
