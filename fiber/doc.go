// Package fiber implements the cooperative, stackful unit of execution at the
// center of fibermesh.
//
// A fiber is created from a plain function with New and runs immediately on
// its own execution context until the function first yields or returns; the
// creating call only returns control once the fiber has suspended or
// finished. From inside the body, the static yield functions (Yield, Sleep,
// Poll, On, AwaitHandle, Await, YieldWith, Suspend) suspend the current fiber
// and install the wake condition deciding when it runs again. Wake resumes a
// waiting fiber at the exact suspension point.
//
// Lifecycle transitions emit synchronous notifications (running, waiting,
// finished, plus a generic state-changed signal) to explicitly registered
// observers, delivered in registration order.
//
// Threading contract: fiber bodies are interleaved, never parallel. Wake must
// be invoked on the goroutine driving the fiber, normally the scheduler's
// tick; goroutines outside it marshal wake requests through
// core.TickScheduler.Dispatch instead of calling Wake directly.
package fiber
