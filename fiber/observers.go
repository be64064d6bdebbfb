package fiber

import (
	"sync"

	"github.com/hupe1980/fibermesh/core"
)

// observers holds the explicitly registered lifecycle callbacks of one fiber.
// Delivery is synchronous and follows registration order. The zero value is
// ready to use.
type observers struct {
	mu           sync.Mutex
	nextID       int
	running      []callback
	waiting      []callback
	finished     []callback
	stateChanged []stateCallback
}

type callback struct {
	id int
	fn func()
}

type stateCallback struct {
	id int
	fn func(core.FiberState)
}

func (o *observers) onRunning(fn func()) func() {
	return o.add(&o.running, fn)
}

func (o *observers) onWaiting(fn func()) func() {
	return o.add(&o.waiting, fn)
}

func (o *observers) onFinished(fn func()) func() {
	return o.add(&o.finished, fn)
}

func (o *observers) onStateChanged(fn func(core.FiberState)) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.stateChanged = append(o.stateChanged, stateCallback{id: id, fn: fn})
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, cb := range o.stateChanged {
			if cb.id == id {
				o.stateChanged = append(o.stateChanged[:i], o.stateChanged[i+1:]...)
				return
			}
		}
	}
}

func (o *observers) add(list *[]callback, fn func()) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	*list = append(*list, callback{id: id, fn: fn})
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, cb := range *list {
			if cb.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

func (o *observers) notifyRunning()  { o.notify(&o.running) }
func (o *observers) notifyWaiting()  { o.notify(&o.waiting) }
func (o *observers) notifyFinished() { o.notify(&o.finished) }

func (o *observers) notify(list *[]callback) {
	o.mu.Lock()
	cbs := append([]callback(nil), *list...)
	o.mu.Unlock()
	for _, cb := range cbs {
		cb.fn()
	}
}

func (o *observers) notifyStateChanged(state core.FiberState) {
	o.mu.Lock()
	cbs := append([]stateCallback(nil), o.stateChanged...)
	o.mu.Unlock()
	for _, cb := range cbs {
		cb.fn(state)
	}
}
