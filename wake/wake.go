package wake

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/fibermesh/core"
)

// base carries the pieces every condition variant shares: the waker it will
// eventually fire on, and the at-most-once latch. fire and Retire race only
// on the latch, so externally driven variants can fire from any goroutine.
type base struct {
	waker core.Waker
	done  atomic.Bool
}

// Waker returns the fiber this condition will wake.
func (b *base) Waker() core.Waker { return b.waker }

// Ready reports false; tick-driven variants override it.
func (b *base) Ready(time.Time) bool { return false }

// Arm is a no-op; externally driven variants override it.
func (b *base) Arm() {}

// Retire makes the condition inert. Idempotent.
func (b *base) Retire() { b.done.Store(true) }

// fire wins the latch exactly once. Reports whether this call fired the
// condition, i.e. it was neither fired nor retired before.
func (b *base) fire() bool { return b.done.CompareAndSwap(false, true) }

// retired reports whether the latch is spent.
func (b *base) retired() bool { return b.done.Load() }
