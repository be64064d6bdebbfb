package wake

import (
	"sync"

	"github.com/hupe1980/fibermesh/core"
)

// FutureCondition waits for an asynchronous task handle to finish. It fires
// on completion regardless of outcome: success, failure and cancellation all
// wake the fiber, which then inspects the handle itself. A handle that is
// already finished when the condition is armed wakes the fiber on the next
// dispatch drain.
type FutureCondition struct {
	base
	sched  core.TickScheduler
	handle core.TaskHandle

	mu     sync.Mutex
	cancel func()
}

// Future returns a condition that wakes w when handle completes or is
// canceled.
func Future(sched core.TickScheduler, w core.Waker, handle core.TaskHandle) *FutureCondition {
	return &FutureCondition{base: base{waker: w}, sched: sched, handle: handle}
}

// Handle returns the task handle the condition is bound to.
func (c *FutureCondition) Handle() core.TaskHandle { return c.handle }

// Arm subscribes to the handle's completion. TaskHandle.Subscribe delivers
// immediately for already finished handles, which covers the race where the
// task completed before the fiber suspended.
func (c *FutureCondition) Arm() {
	cancel := c.handle.Subscribe(c.deliver)
	c.mu.Lock()
	c.cancel = cancel
	retired := c.retired()
	c.mu.Unlock()
	if retired && cancel != nil {
		cancel()
	}
}

func (c *FutureCondition) deliver() {
	if !c.fire() {
		return
	}
	c.sched.Dispatch(c.waker)
}

// Retire makes the condition inert and drops the completion subscription.
func (c *FutureCondition) Retire() {
	c.base.Retire()
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
