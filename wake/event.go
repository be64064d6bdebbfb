package wake

import (
	"sync"

	"github.com/hupe1980/fibermesh/core"
)

// EventCondition waits for a named event from an external source. The
// subscription is created in Arm (after the fiber has suspended, so a fast
// emitter cannot race the suspension) and removed after the first delivery.
// Deliveries may arrive on any goroutine; the wake itself is marshaled onto
// the scheduler through Dispatch.
type EventCondition struct {
	base
	sched core.TickScheduler
	src   core.EventSource
	event string

	mu     sync.Mutex
	unsub  func()
	subErr error
}

// Event returns a condition that wakes w when src emits the named event.
func Event(sched core.TickScheduler, w core.Waker, src core.EventSource, event string) *EventCondition {
	return &EventCondition{base: base{waker: w}, sched: sched, src: src, event: event}
}

// Event returns the event name the condition is bound to.
func (c *EventCondition) Event() string { return c.event }

// Err returns the subscription error, if any. A failed subscription wakes the
// fiber immediately so the error can be surfaced from the yield call.
func (c *EventCondition) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subErr
}

// Arm subscribes to the source. On subscription failure the fiber is woken
// straight away and the error is held for the resumed fiber to pick up.
func (c *EventCondition) Arm() {
	unsub, err := c.src.Subscribe(c.event, c.deliver)
	c.mu.Lock()
	c.unsub = unsub
	c.subErr = err
	retired := c.retired()
	c.mu.Unlock()
	if err != nil {
		if c.fire() {
			c.sched.Dispatch(c.waker)
		}
		return
	}
	// Retired between construction and Arm: drop the subscription again.
	if retired && unsub != nil {
		unsub()
	}
}

func (c *EventCondition) deliver() {
	if !c.fire() {
		return
	}
	c.unsubscribe()
	c.sched.Dispatch(c.waker)
}

// Retire makes the condition inert and drops the subscription.
func (c *EventCondition) Retire() {
	c.base.Retire()
	c.unsubscribe()
}

func (c *EventCondition) unsubscribe() {
	c.mu.Lock()
	unsub := c.unsub
	c.unsub = nil
	c.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}
