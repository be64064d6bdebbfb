package testutil

import (
	"fmt"
	"sync"
)

// Emitter is a controllable core.EventSource. Tests subscribe through the
// runtime and fire events with Emit. Unknown events can be made to fail
// subscription via Refuse.
type Emitter struct {
	mu      sync.Mutex
	nextID  int
	subs    map[string]map[int]func()
	refused map[string]bool
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{subs: map[string]map[int]func(){}, refused: map[string]bool{}}
}

// Refuse makes future subscriptions to the named event fail.
func (e *Emitter) Refuse(event string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refused[event] = true
}

// Subscribe registers fn for the named event.
func (e *Emitter) Subscribe(event string, fn func()) (func(), error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.refused[event] {
		return nil, fmt.Errorf("testutil: no such event %q", event)
	}
	id := e.nextID
	e.nextID++
	if e.subs[event] == nil {
		e.subs[event] = map[int]func(){}
	}
	e.subs[event][id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs[event], id)
	}, nil
}

// Emit fires the named event, invoking every active subscriber.
func (e *Emitter) Emit(event string) {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.subs[event]))
	for _, fn := range e.subs[event] {
		fns = append(fns, fn)
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// SubscriberCount returns the number of active subscriptions for the event.
func (e *Emitter) SubscriberCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs[event])
}
