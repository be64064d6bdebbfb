package wake

import "github.com/hupe1980/fibermesh/core"

// ManualCondition never fires on its own; only an explicit Wake call on the
// fiber resumes it. It exists so "yield forever" installs a condition like
// every other suspension instead of being a special case.
type ManualCondition struct {
	base
}

// Manual returns a condition that leaves waking w entirely to explicit Wake
// calls.
func Manual(w core.Waker) *ManualCondition {
	return &ManualCondition{base: base{waker: w}}
}
