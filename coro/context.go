package coro

import "errors"

// ErrUnwind is the panic value used to force a suspended Context to unwind
// its stack during Destroy. Entry functions that recover indiscriminately
// should re-panic values equal to ErrUnwind.
var ErrUnwind = errors.New("coro: context unwinding")

// Context is one suspendable call stack. It is created prepared but not
// started; the first Resume begins executing the entry function, and every
// later Resume continues it from the point of the last Yield.
//
// A Context must only be entered from one place at a time: Resume transfers
// control in, Yield (called from inside the entry) transfers control back to
// the most recent resumer. The zero value is not usable; use New.
type Context struct {
	entry     func()
	stackSize uint32

	// handoff channels; both unbuffered so control transfer is a rendezvous
	resume chan struct{} // resumer -> context
	yield  chan struct{} // context -> resumer

	// written by the owning side only, ordered by the channel handoff
	started bool
	done    bool
	unwind  bool
	err     error
}

// New prepares a Context that will run entry on its own stack once resumed.
// stackSize is the requested stack reservation in bytes; 0 means the process
// default. The Go runtime grows stacks on demand, so the value is recorded
// for introspection rather than pre-allocated. entry must be non-nil.
func New(stackSize uint32, entry func()) *Context {
	if entry == nil {
		panic("coro: nil entry function")
	}
	return &Context{
		entry:     entry,
		stackSize: stackSize,
		resume:    make(chan struct{}),
		yield:     make(chan struct{}),
	}
}

// Resume transfers control into the Context. It returns when the entry
// function yields or returns. Resuming a finished Context is a usage error
// and panics.
func (c *Context) Resume() {
	if c.done {
		panic("coro: resume of finished context")
	}
	if !c.started {
		c.started = true
		go c.run()
	} else {
		c.resume <- struct{}{}
	}
	<-c.yield
}

// Yield transfers control back to the most recent resumer. It returns when
// the Context is next resumed. Must only be called from inside the entry
// function running on this Context.
func (c *Context) Yield() {
	c.yield <- struct{}{}
	<-c.resume
	if c.unwind {
		panic(ErrUnwind)
	}
}

// run is the entry trampoline. It recovers entry panics so they surface on
// the resumer side via Err instead of crashing the process.
func (c *Context) run() {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); !ok || !errors.Is(err, ErrUnwind) {
				c.err = newPanicError(r)
			}
		}
		c.done = true
		c.yield <- struct{}{}
	}()
	c.entry()
}

// Destroy releases the Context. If the entry function is suspended mid-stack
// it is unwound first by panicking the pending Yield with ErrUnwind, letting
// deferred cleanup inside the entry run. Destroying a finished or never
// started Context is a no-op.
func (c *Context) Destroy() {
	if !c.started || c.done {
		return
	}
	c.unwind = true
	c.resume <- struct{}{}
	<-c.yield
}

// Started reports whether the entry function has begun executing.
func (c *Context) Started() bool { return c.started }

// Done reports whether the entry function has returned or been unwound.
func (c *Context) Done() bool { return c.done }

// Err returns the panic captured from the entry function, or nil. Only
// meaningful once Done reports true.
func (c *Context) Err() error { return c.err }

// StackSize returns the stack reservation requested at creation; 0 means the
// process default.
func (c *Context) StackSize() uint32 { return c.stackSize }
