// Package wake provides the WakeCondition variants that decide when a waiting
// fiber becomes runnable again:
//
//   - NextTick: the next scheduler tick
//   - Timed: a deadline, evaluated on tick boundaries
//   - Poll: a predicate sampled at a configured cadence
//   - Event: a named event emitted by an external source
//   - Future: completion (or cancellation) of an asynchronous task handle
//   - Manual: nothing but an explicit Wake call
//
// All variants share at-most-once firing semantics: a condition wakes its
// fiber once and is inert afterwards, and retiring a condition before it fires
// suppresses the wake entirely ("last wake wins"). Tick-driven variants are
// polled by the scheduler through Ready; externally driven variants subscribe
// in Arm and marshal their notification onto the scheduler via Dispatch so
// fiber state is never touched from a foreign goroutine.
package wake
