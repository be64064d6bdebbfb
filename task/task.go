package task

import (
	"context"
	"sync"

	"github.com/hupe1980/fibermesh/core"
)

// Task is a handle to a function executing on its own goroutine. It finishes
// exactly once: with the function's result, with its error, or as canceled.
type Task[T any] struct {
	id     string
	cancel context.CancelFunc

	mu       sync.Mutex
	nextID   int
	subs     map[int]func()
	finished bool
	canceled bool
	result   T
	err      error
	done     chan struct{}
}

// Go runs fn on a new goroutine and returns its handle. The context passed to
// fn is canceled when Cancel is called; fn should honor it for prompt
// cancellation, but the handle finishes as canceled either way.
func Go[T any](fn func(ctx context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Task[T]{
		id:     core.NewID(),
		cancel: cancel,
		subs:   map[int]func(){},
		done:   make(chan struct{}),
	}
	go func() {
		defer cancel()
		v, err := fn(ctx)
		t.finish(v, err, false)
	}()
	return t
}

// ID returns the task's unique identifier.
func (t *Task[T]) ID() string { return t.id }

// Cancel finishes the task as canceled if it has not completed yet and
// cancels the context passed to its function. Idempotent.
func (t *Task[T]) Cancel() {
	// Finish first so the canceled outcome wins over the function observing
	// ctx.Done and returning its own error.
	var zero T
	t.finish(zero, core.ErrTaskCanceled, true)
	t.cancel()
}

// Finished reports whether the task has completed for any reason.
func (t *Task[T]) Finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}

// Canceled reports whether the task finished by cancellation.
func (t *Task[T]) Canceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

// Subscribe registers fn to run once when the task finishes. If the task is
// already finished, fn runs immediately on the calling goroutine. The
// returned func removes the subscription.
func (t *Task[T]) Subscribe(fn func()) (cancel func()) {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		fn()
		return func() {}
	}
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subs, id)
	}
}

// Result returns the task's outcome. For a canceled task the error is
// core.ErrTaskCanceled. Calling Result before the task finished returns the
// zero value and a nil error; use Wait or fiber.Await to sequence properly.
func (t *Task[T]) Result() (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.err
}

// Wait blocks the calling goroutine until the task finishes, then returns
// its result. Fibers should use fiber.Await instead, which suspends the
// fiber rather than blocking the scheduler.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.Result()
}

func (t *Task[T]) finish(v T, err error, canceled bool) {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return
	}
	t.finished = true
	t.canceled = canceled
	t.result = v
	t.err = err
	fns := make([]func(), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.subs = nil
	t.mu.Unlock()

	close(t.done)
	for _, fn := range fns {
		fn()
	}
}
