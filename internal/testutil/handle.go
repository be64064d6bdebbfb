package testutil

import "sync"

// Handle is a hand-driven core.TaskHandle. Tests complete or cancel it
// explicitly; subscribers registered after completion fire immediately,
// matching the TaskHandle contract.
type Handle struct {
	mu       sync.Mutex
	nextID   int
	subs     map[int]func()
	finished bool
	canceled bool
}

// NewHandle creates a pending handle.
func NewHandle() *Handle {
	return &Handle{subs: map[int]func(){}}
}

// Finished reports whether Complete or Cancel has been called.
func (h *Handle) Finished() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.finished
}

// Canceled reports whether the handle finished by cancellation.
func (h *Handle) Canceled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canceled
}

// Subscribe registers fn to run on completion, immediately if already done.
func (h *Handle) Subscribe(fn func()) func() {
	h.mu.Lock()
	if h.finished {
		h.mu.Unlock()
		fn()
		return func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Complete finishes the handle successfully and notifies subscribers.
func (h *Handle) Complete() { h.finish(false) }

// Cancel finishes the handle as canceled and notifies subscribers.
func (h *Handle) Cancel() { h.finish(true) }

func (h *Handle) finish(canceled bool) {
	h.mu.Lock()
	if h.finished {
		h.mu.Unlock()
		return
	}
	h.finished = true
	h.canceled = canceled
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.subs = map[int]func(){}
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
