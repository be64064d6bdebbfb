// Package core provides the foundational types and interfaces shared by the
// fibermesh runtime. It defines the core abstractions for:
//
//   - FiberState (the lifecycle state machine every fiber moves through)
//   - Waker / WakeCondition (the suspension protocol between a waiting fiber
//     and whatever eventually resumes it)
//   - TickScheduler (what a fiber needs from the scheduler that drives it)
//   - TaskHandle / EventSource (external collaborators a fiber can wait on)
//
// The package intentionally keeps implementation concerns (context switching,
// condition variants, the tick loop) out of scope, exposing small interfaces
// so the fiber, wake and scheduler packages depend on contracts rather than
// on each other.
package core
