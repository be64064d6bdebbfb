// Package coro implements the low-level execution-context primitive the fiber
// runtime is built on: a Context owns one suspended call stack and supports a
// two-way transfer of control between that stack and whoever resumes it.
//
// A Context is backed by a dedicated goroutine that stays parked except for
// the window between a Resume and the matching Yield (or entry return).
// Ownership of the CPU is handed over through unbuffered channels, so exactly
// one side of the pair executes at any instant and no locking is needed around
// the transfer itself. The package knows nothing about fibers, wake conditions
// or scheduling; it only moves control and carries entry panics back to the
// resumer side.
package coro
