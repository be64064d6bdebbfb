package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/fibermesh/core"
	"github.com/hupe1980/fibermesh/logging"
)

// Config defines tuning parameters for the scheduler's operational behavior.
type Config struct {
	// TickPeriod is the nominal duration of one tick. It is the granularity
	// of every time- and poll-based wake: durations below it round up to a
	// full tick. Only Run uses it for pacing; an external host loop calling
	// Tick directly sets its own pace.
	TickPeriod time.Duration

	// DispatchBuffer sets the queue capacity for wakes marshaled from
	// foreign goroutines. A full queue makes Dispatch block until the next
	// tick drains it; wakes are never dropped.
	DispatchBuffer int
}

// DefaultConfig provides default configuration values: a 10ms tick and a
// dispatch queue of 64.
var DefaultConfig = Config{
	TickPeriod:     10 * time.Millisecond,
	DispatchBuffer: 64,
}

// Options configures a Scheduler instance using the functional options
// pattern.
type Options struct {
	// Config contains operational parameters. Defaults to DefaultConfig.
	Config Config

	// Logger provides structured logging for tick and wake diagnostics.
	// Defaults to NoOp logger if nil.
	Logger logging.Logger

	// Now supplies the time snapshot used for condition evaluation.
	// Defaults to time.Now; override for deterministic tests.
	Now func() time.Time

	// Hooks are invoked around each tick and on every wake the scheduler
	// applies. See Hook.
	Hooks []Hook
}

// Scheduler maintains the set of wake conditions belonging to waiting fibers
// and evaluates them on each tick. One Scheduler corresponds to one logical
// thread of fiber execution: fibers bound to it run interleaved on whichever
// goroutine drives Tick, never in parallel.
type Scheduler struct {
	config Config
	logger logging.Logger
	now    func() time.Time
	hooks  *hookManager

	dispatchCh chan core.Waker

	mu      sync.Mutex
	pending []core.WakeCondition
}

// New creates a Scheduler with sensible defaults and optional configuration.
//
// Example:
//
//	sched := scheduler.New(func(o *scheduler.Options) {
//	    o.Config.TickPeriod = 5 * time.Millisecond
//	    o.Logger = myLogger
//	})
func New(optFns ...func(o *Options)) *Scheduler {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
		Now:    time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config.TickPeriod <= 0 {
		opts.Config.TickPeriod = DefaultConfig.TickPeriod
	}
	if opts.Config.DispatchBuffer <= 0 {
		opts.Config.DispatchBuffer = DefaultConfig.DispatchBuffer
	}

	return &Scheduler{
		config:     opts.Config,
		logger:     opts.Logger,
		now:        opts.Now,
		hooks:      newHookManager(opts.Hooks),
		dispatchCh: make(chan core.Waker, opts.Config.DispatchBuffer),
	}
}

// TickPeriod returns the nominal duration of one tick.
func (s *Scheduler) TickPeriod() time.Duration { return s.config.TickPeriod }

// Now returns the scheduler's clock reading. Timed suspensions anchor their
// deadlines here so an injected clock governs both ends of the comparison.
func (s *Scheduler) Now() time.Time { return s.now() }

// Schedule adds a condition to the pending set. Conditions are evaluated, and
// their fibers woken, in the order they were scheduled.
func (s *Scheduler) Schedule(c core.WakeCondition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, c)
}

// Unschedule removes a condition from the pending set. Unknown conditions
// are ignored.
func (s *Scheduler) Unschedule(c core.WakeCondition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, pc := range s.pending {
		if pc == c {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Dispatch queues a wake request from any goroutine. The wake is applied on
// the driving goroutine at the start of the next Tick, before conditions are
// evaluated. Blocks only when the queue is full; wakes are never dropped.
func (s *Scheduler) Dispatch(w core.Waker) {
	s.dispatchCh <- w
}

// PendingLen returns the number of conditions currently awaiting evaluation.
func (s *Scheduler) PendingLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Tick performs one scheduling round: first every queued cross-goroutine
// wake is applied, then the pending conditions are evaluated in registration
// order against a single time snapshot and each fired condition's fiber is
// woken. Host event loops call Tick once per iteration.
//
// Conditions installed during this Tick (by fibers that ran and yielded
// again) are not evaluated until the next Tick, which is what gives NextTick
// its meaning.
func (s *Scheduler) Tick() {
	start := s.now()
	s.hooks.beforeTick(s)

	// Snapshot before draining: a dispatch-woken fiber that yields again
	// installs a condition that must wait for the next tick, exactly like
	// one installed by a fiber woken during evaluation below.
	s.mu.Lock()
	snapshot := append([]core.WakeCondition(nil), s.pending...)
	s.mu.Unlock()

	woken := 0
drain:
	for {
		select {
		case w := <-s.dispatchCh:
			s.hooks.onWake(s, w)
			w.Wake()
			woken++
		default:
			break drain
		}
	}

	now := s.now()
	for _, c := range snapshot {
		if !c.Ready(now) {
			continue
		}
		s.Unschedule(c)
		w := c.Waker()
		s.hooks.onWake(s, w)
		w.Wake()
		woken++
	}

	s.hooks.afterTick(s, woken)
	s.logger.Debug("scheduler tick completed",
		"duration", s.now().Sub(start),
		"evaluated", len(snapshot),
		"woken", woken,
	)
}

// Run drives Tick from an internal ticker until ctx is canceled, for hosts
// that do not bring their own event loop. It returns ctx.Err. The calling
// goroutine becomes the scheduler's driving goroutine for the duration.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.config.TickPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Close retires every pending condition and unwinds the waiting fibers that
// own them, running their deferred cleanup. This is the cleanup path for
// fibers that would otherwise stay suspended forever. Must be called on the
// driving goroutine, and not concurrently with Tick.
func (s *Scheduler) Close() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, c := range pending {
		c.Retire()
		if u, ok := c.Waker().(interface{ Unwind() }); ok {
			u.Unwind()
		}
	}
	s.logger.Debug("scheduler closed", "unwound", len(pending))
}
