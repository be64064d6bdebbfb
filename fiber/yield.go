package fiber

import (
	"sync"
	"time"

	"github.com/hupe1980/fibermesh/core"
	"github.com/hupe1980/fibermesh/task"
	"github.com/hupe1980/fibermesh/wake"
)

// The current-fiber stack maps the execution presently running to the fiber
// that owns it, so the static yield functions know which fiber to suspend.
// Entries are pushed when control transfers into a fiber's context and popped
// when it transfers back out, which makes nested fiber launches (a fiber body
// creating another fiber) come out naturally: the inner fiber is on top for
// exactly as long as its body executes.
var (
	curMu    sync.Mutex
	curStack []*Fiber
)

func pushCurrent(f *Fiber) {
	curMu.Lock()
	curStack = append(curStack, f)
	curMu.Unlock()
}

func popCurrent(f *Fiber) {
	curMu.Lock()
	defer curMu.Unlock()
	if n := len(curStack); n == 0 || curStack[n-1] != f {
		panic("fiber: current-fiber stack corrupted")
	}
	curStack = curStack[:len(curStack)-1]
}

// Current returns the fiber whose body is presently executing, or nil when
// called outside any fiber body.
func Current() *Fiber {
	curMu.Lock()
	defer curMu.Unlock()
	if len(curStack) == 0 {
		return nil
	}
	return curStack[len(curStack)-1]
}

// current is the guarded lookup backing the static yields. Yielding outside
// any fiber body is a programming error and panics with core.ErrNotFiber.
func current() *Fiber {
	f := Current()
	if f == nil {
		panic(core.ErrNotFiber)
	}
	return f
}

// Yield suspends the current fiber until the next scheduler tick.
func Yield() {
	f := current()
	f.suspend(wake.NextTick(f))
}

// Sleep suspends the current fiber for at least d. Durations shorter than one
// scheduler tick round up to a full tick, since wakes only happen on tick
// boundaries. The deadline is anchored to the scheduler's clock.
func Sleep(d time.Duration) {
	f := current()
	f.suspend(wake.Timed(f, d, f.sched.Now()))
}

// Poll suspends the current fiber until pred reports true. pred is sampled on
// the scheduler's tick, at most once per interval; an interval of 0 samples
// every tick.
func Poll(pred func() bool, interval time.Duration) {
	if pred == nil {
		panic("fiber: nil poll predicate")
	}
	f := current()
	f.suspend(wake.Poll(f, pred, interval))
}

// On suspends the current fiber until src emits the named event once. A
// subscription failure wakes the fiber immediately and is returned here.
func On(src core.EventSource, event string) error {
	f := current()
	cond := wake.Event(f.sched, f, src, event)
	f.suspend(cond)
	return cond.Err()
}

// AwaitHandle suspends the current fiber until the handle's task completes or
// is canceled, then returns the identical handle so the caller can retrieve
// the outcome without a second lookup.
func AwaitHandle(h core.TaskHandle) core.TaskHandle {
	f := current()
	f.suspend(wake.Future(f.sched, f, h))
	return h
}

// Await suspends the current fiber until t finishes and returns its result.
// A canceled task surfaces as core.ErrTaskCanceled, not as success.
func Await[T any](t *task.Task[T]) (T, error) {
	AwaitHandle(t)
	return t.Result()
}

// YieldWith suspends the current fiber with a caller-supplied wake condition.
// The condition's waker should be the current fiber.
func YieldWith(cond core.WakeCondition) {
	if cond == nil {
		panic("fiber: nil wake condition")
	}
	current().suspend(cond)
}

// Suspend parks the current fiber until an explicit Wake call; no scheduler
// activity resumes it.
func Suspend() {
	f := current()
	f.suspend(wake.Manual(f))
}
