package testutil

import (
	"sync"
	"time"

	"github.com/hupe1980/fibermesh/core"
)

// Scheduler is a recording core.TickScheduler. Dispatched wakers are queued
// until Drain applies them, mirroring how the real scheduler marshals
// cross-goroutine wakes onto its tick.
type Scheduler struct {
	mu         sync.Mutex
	scheduled  []core.WakeCondition
	dispatched []core.Waker
	period     time.Duration
	now        time.Time
}

// NewScheduler creates a recording scheduler with the given tick period.
func NewScheduler(period time.Duration) *Scheduler {
	return &Scheduler{period: period}
}

// Schedule records the condition in registration order.
func (s *Scheduler) Schedule(c core.WakeCondition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, c)
}

// Unschedule removes the condition if present.
func (s *Scheduler) Unschedule(c core.WakeCondition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sc := range s.scheduled {
		if sc == c {
			s.scheduled = append(s.scheduled[:i], s.scheduled[i+1:]...)
			return
		}
	}
}

// Dispatch queues the waker.
func (s *Scheduler) Dispatch(w core.Waker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatched = append(s.dispatched, w)
}

// TickPeriod returns the configured tick period.
func (s *Scheduler) TickPeriod() time.Duration { return s.period }

// SetNow pins the scheduler's clock to a fixed instant.
func (s *Scheduler) SetNow(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = t
}

// Now returns the pinned instant, or the wall clock if none was set.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.now.IsZero() {
		return time.Now()
	}
	return s.now
}

// Scheduled returns the currently registered conditions in order.
func (s *Scheduler) Scheduled() []core.WakeCondition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.WakeCondition(nil), s.scheduled...)
}

// Dispatched returns the queued wakers without applying them.
func (s *Scheduler) Dispatched() []core.Waker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Waker(nil), s.dispatched...)
}

// Drain applies and clears the queued wakers, returning how many ran.
func (s *Scheduler) Drain() int {
	s.mu.Lock()
	pending := s.dispatched
	s.dispatched = nil
	s.mu.Unlock()
	for _, w := range pending {
		w.Wake()
	}
	return len(pending)
}
