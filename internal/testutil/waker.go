package testutil

import "sync/atomic"

// Waker counts wake requests. Safe for concurrent use.
type Waker struct {
	wakes atomic.Int64
}

// NewWaker creates a counting waker.
func NewWaker() *Waker { return &Waker{} }

// Wake records one wake request.
func (w *Waker) Wake() { w.wakes.Add(1) }

// Wakes returns the number of wake requests recorded so far.
func (w *Waker) Wakes() int { return int(w.wakes.Load()) }
