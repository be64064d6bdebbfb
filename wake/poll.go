package wake

import (
	"time"

	"github.com/hupe1980/fibermesh/core"
)

// PollCondition samples a predicate at a configured cadence and fires on the
// tick where the predicate first reports true. The predicate runs on the
// scheduler's goroutine.
type PollCondition struct {
	base
	pred     func() bool
	interval time.Duration
	lastPoll time.Time
}

// Poll returns a condition that wakes w once pred reports true. pred is
// invoked at most once per interval; an interval of 0 (or anything shorter
// than a tick) collapses to once per tick. The first sample happens on the
// first tick after the fiber suspended.
func Poll(w core.Waker, pred func() bool, interval time.Duration) *PollCondition {
	if interval < 0 {
		interval = 0
	}
	return &PollCondition{base: base{waker: w}, pred: pred, interval: interval}
}

// Interval returns the minimum spacing between predicate samples.
func (c *PollCondition) Interval() time.Duration { return c.interval }

// Ready samples the predicate when the cadence allows and fires on the first
// true result.
func (c *PollCondition) Ready(now time.Time) bool {
	if c.retired() {
		return false
	}
	if c.interval > 0 && !c.lastPoll.IsZero() && now.Sub(c.lastPoll) < c.interval {
		return false
	}
	c.lastPoll = now
	if !c.pred() {
		return false
	}
	return c.fire()
}
