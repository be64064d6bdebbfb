// Package scheduler implements the tick-side half of the fiber runtime: the
// pending set of wake conditions belonging to waiting fibers, the evaluation
// of those conditions on each host-loop tick, and the marshaling of wake
// requests arriving from foreign goroutines onto the tick.
//
// # Core Responsibilities
//
// Condition Evaluation:
//   - Pending conditions are kept in registration order
//   - Ready is called exactly once per condition per tick, against a single
//     time snapshot, never mid-tick
//   - Fibers whose conditions fired on the same tick are woken in
//     registration order (the documented stable order)
//
// Cross-Goroutine Wake Marshaling:
//   - Dispatch queues a wake from any goroutine
//   - Queued wakes are applied at the start of the next Tick, before any
//     condition evaluation, so externally signaled wakes are never lost
//     behind a tick's evaluation pass
//
// Driving:
//   - Tick is the integration point for an existing host event loop
//   - Run drives Tick from an internal time.Ticker for hosts that do not
//     have a loop of their own
//   - Close retires all pending conditions and unwinds their waiting fibers
//
// # Usage
//
//	sched := scheduler.New(func(o *scheduler.Options) {
//	    o.Config.TickPeriod = 5 * time.Millisecond
//	    o.Logger = logger
//	})
//	f := fiber.New(sched, body)
//	sched.Tick() // or sched.Run(ctx)
//
// At most one goroutine may drive Tick at a time; fiber bodies execute on
// that goroutine's schedule and never in parallel with each other.
package scheduler
