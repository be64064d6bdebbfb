// Package fibermesh provides a high-level façade over the cooperative fiber
// runtime (fibers, wake conditions, tick scheduler & logging) enabling rapid
// construction of tick-driven concurrent programs. Most applications interact
// with this package by:
//  1. Creating a Runtime via New() (optionally overriding scheduler config)
//  2. Spawning fibers with Go, whose bodies suspend through fiber.Yield,
//     fiber.Sleep, fiber.Poll, fiber.On and fiber.Await
//  3. Driving ticks, either from a host event loop via Tick or with the
//     built-in loop via Run
//
// The façade delegates wake bookkeeping to scheduler.Scheduler while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing; hosts with their own event loop call Tick once per
// iteration instead of Run.
package fibermesh

import (
	"context"

	"github.com/hupe1980/fibermesh/fiber"
	"github.com/hupe1980/fibermesh/logging"
	"github.com/hupe1980/fibermesh/scheduler"
)

// Options configures the Runtime instance.
type Options struct {
	// Scheduler configuration (tick period, dispatch buffer)
	SchedulerConfig scheduler.Config

	// StackSize is the advisory stack reservation for fibers spawned through
	// Go. Zero keeps the package-level default.
	StackSize uint32

	// Hooks observe scheduler ticks and fiber wakes.
	Hooks []scheduler.Hook

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Runtime is the high-level façade aggregating the scheduler and fiber setup.
type Runtime struct {
	opts  Options
	sched *scheduler.Scheduler
}

// New creates a new Runtime instance with optional overrides.
func New(optFns ...func(o *Options)) *Runtime {
	opts := Options{
		SchedulerConfig: scheduler.DefaultConfig,
		Logger:          logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	s := scheduler.New(func(o *scheduler.Options) {
		o.Config = opts.SchedulerConfig
		o.Hooks = opts.Hooks
		o.Logger = opts.Logger
	})

	return &Runtime{opts: opts, sched: s}
}

// Scheduler exposes the underlying scheduler, for wiring custom wake
// conditions or dispatching wakes from foreign goroutines.
func (r *Runtime) Scheduler() *scheduler.Scheduler { return r.sched }

// Go spawns a fiber running fn. The body executes synchronously up to its
// first suspension point before Go returns. Must be called on the driving
// goroutine.
func (r *Runtime) Go(fn func()) *fiber.Fiber {
	return fiber.New(r.sched, fn, func(o *fiber.Options) {
		o.Logger = r.opts.Logger
		if r.opts.StackSize > 0 {
			o.StackSize = r.opts.StackSize
		}
	})
}

// Tick advances the runtime by one scheduler tick. Host event loops call this
// once per iteration.
func (r *Runtime) Tick() { r.sched.Tick() }

// Run drives ticks from an internal ticker until ctx is canceled. The calling
// goroutine becomes the driving goroutine for the duration.
func (r *Runtime) Run(ctx context.Context) error { return r.sched.Run(ctx) }

// Close unwinds all waiting fibers, running their deferred cleanup.
func (r *Runtime) Close() { r.sched.Close() }
