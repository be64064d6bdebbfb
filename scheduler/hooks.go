package scheduler

import "github.com/hupe1980/fibermesh/core"

// Hook is a scheduler lifecycle observer. Hooks provide a mechanism for
// observing the scheduling pipeline without modifying core logic: metrics
// collection, tracing, or test instrumentation. They run synchronously on
// the driving goroutine and must be fast; a slow hook stretches every tick.
// Implementations pick the points they care about; unused methods can be
// no-ops (embed NoOpHook).
type Hook interface {
	// BeforeTick runs before a tick's wake application and evaluation.
	BeforeTick(s *Scheduler)

	// AfterTick runs after a tick with the number of fibers woken.
	AfterTick(s *Scheduler, woken int)

	// OnWake runs before the scheduler wakes w.
	OnWake(s *Scheduler, w core.Waker)
}

// NoOpHook implements Hook with no-ops, for embedding.
type NoOpHook struct{}

// BeforeTick does nothing.
func (NoOpHook) BeforeTick(*Scheduler) {}

// AfterTick does nothing.
func (NoOpHook) AfterTick(*Scheduler, int) {}

// OnWake does nothing.
func (NoOpHook) OnWake(*Scheduler, core.Waker) {}

// hookManager fans lifecycle points out to the registered hooks in order.
type hookManager struct {
	hooks []Hook
}

func newHookManager(hooks []Hook) *hookManager {
	return &hookManager{hooks: hooks}
}

func (m *hookManager) beforeTick(s *Scheduler) {
	for _, h := range m.hooks {
		h.BeforeTick(s)
	}
}

func (m *hookManager) afterTick(s *Scheduler, woken int) {
	for _, h := range m.hooks {
		h.AfterTick(s, woken)
	}
}

func (m *hookManager) onWake(s *Scheduler, w core.Waker) {
	for _, h := range m.hooks {
		h.OnWake(s, w)
	}
}
