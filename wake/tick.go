package wake

import (
	"time"

	"github.com/hupe1980/fibermesh/core"
)

// NextTickCondition fires on the first tick after the fiber suspended.
type NextTickCondition struct {
	base
}

// NextTick returns a condition that wakes w on the next scheduler tick.
func NextTick(w core.Waker) *NextTickCondition {
	return &NextTickCondition{base: base{waker: w}}
}

// Ready fires on the first evaluation.
func (c *NextTickCondition) Ready(time.Time) bool {
	return c.fire()
}
