package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Waker is the resume side of a suspension. Fibers implement it; wake
// conditions hold one so that firing can request resumption without knowing
// anything else about the fiber.
type Waker interface {
	// Wake requests that the waiting owner resumes. Calling Wake on an owner
	// that is not waiting is a no-op.
	Wake()
}

// WakeCondition decides when a waiting fiber becomes runnable again. A
// condition is bound to exactly one Waker for its whole life and fires at most
// once; after firing or after Retire it is inert.
//
// Tick-driven variants (next-tick, timed, poll) report readiness through
// Ready, which the scheduler calls once per tick. Externally driven variants
// (event, future) do their work in Arm by subscribing to their source and
// dispatching the wake when notified; their Ready always reports false.
type WakeCondition interface {
	// Waker returns the fiber this condition will wake.
	Waker() Waker

	// Ready reports whether the condition fired on this tick. It is only
	// ever called on a tick boundary with the tick's time snapshot.
	Ready(now time.Time) bool

	// Arm activates any external subscription the condition needs. Called
	// exactly once, after the owning fiber has suspended.
	Arm()

	// Retire makes the condition inert and releases external subscriptions.
	// Retiring an already retired or fired condition is a no-op.
	Retire()
}

// TickScheduler is the contract a fiber needs from the scheduler that drives
// it: registration of tick-evaluated conditions and marshaling of wake
// requests that originate on foreign goroutines onto the tick.
type TickScheduler interface {
	// Schedule adds a condition to the pending set evaluated on each tick.
	Schedule(c WakeCondition)

	// Unschedule removes a condition from the pending set. Unknown
	// conditions are ignored.
	Unschedule(c WakeCondition)

	// Dispatch queues a wake request to be applied on the scheduler's
	// goroutine before the next tick's condition evaluation. Safe to call
	// from any goroutine.
	Dispatch(w Waker)

	// TickPeriod returns the nominal duration of one tick.
	TickPeriod() time.Duration

	// Now returns the scheduler's current time. Deadlines anchored here are
	// evaluated against the same clock on tick boundaries.
	Now() time.Time
}

// TaskHandle is an opaque handle to work executing outside any fiber body.
// A yield on a handle resumes when the underlying work completes, whether it
// succeeded, failed or was canceled.
type TaskHandle interface {
	// Finished reports whether the task has completed for any reason.
	Finished() bool

	// Canceled reports whether the task was canceled before completing.
	Canceled() bool

	// Subscribe registers fn to run once when the task finishes. If the task
	// is already finished, fn runs immediately. The returned func removes
	// the subscription; calling it after delivery is a no-op.
	Subscribe(fn func()) (cancel func())
}

// EventSource is an object capable of emitting named events. A yield on an
// event subscribes once and resumes the fiber on the first delivery.
type EventSource interface {
	// Subscribe registers fn for the named event and returns a removal
	// func. An error indicates the source does not emit that event.
	Subscribe(event string, fn func()) (cancel func(), err error)
}

var (
	// ErrNotFiber is the panic value of static yield functions invoked when
	// no fiber is executing on the calling goroutine.
	ErrNotFiber = errors.New("fibermesh: yield called outside a fiber body")

	// ErrTaskCanceled is returned to a fiber that awaited a task which was
	// canceled rather than completed.
	ErrTaskCanceled = errors.New("fibermesh: task canceled")
)

// NewID generates a unique identifier for fibers and tasks.
func NewID() string {
	return uuid.NewString()
}
