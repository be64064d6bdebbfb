package fiber

import (
	"sync"
	"sync/atomic"

	"github.com/hupe1980/fibermesh/core"
	"github.com/hupe1980/fibermesh/coro"
	"github.com/hupe1980/fibermesh/logging"
)

// defaultStackSize is the process-wide stack reservation consulted at fiber
// creation time. 0 means the host execution model's default.
var defaultStackSize atomic.Uint32

// DefaultStackSize returns the process-wide stack size for new fibers.
func DefaultStackSize() uint32 { return defaultStackSize.Load() }

// SetDefaultStackSize sets the process-wide stack size for new fibers. A
// value of 0 selects the host default. Already created fibers are unaffected.
func SetDefaultStackSize(n uint32) { defaultStackSize.Store(n) }

// Options configures a fiber at creation time.
type Options struct {
	// Logger receives lifecycle and misuse diagnostics. Defaults to NoOp.
	Logger logging.Logger

	// StackSize is the stack reservation for this fiber's context. Defaults
	// to the process-wide DefaultStackSize; 0 means the host default.
	StackSize uint32
}

// Fiber is one cooperatively scheduled, resumable execution of a function.
// Create with New; the zero value is not usable.
type Fiber struct {
	id     string
	sched  core.TickScheduler
	logger logging.Logger
	ctx    *coro.Context
	obs    observers

	mu    sync.Mutex
	state core.FiberState
	cond  core.WakeCondition
	err   error
}

// New creates a fiber bound to sched and synchronously runs fn on the fiber's
// own context until its first suspension or completion. The returned fiber is
// therefore never observed in the idle state.
func New(sched core.TickScheduler, fn func(), optFns ...func(o *Options)) *Fiber {
	if sched == nil {
		panic("fiber: nil scheduler")
	}
	if fn == nil {
		panic("fiber: nil entry function")
	}

	opts := Options{
		Logger:    logging.NoOpLogger{},
		StackSize: DefaultStackSize(),
	}
	for _, opt := range optFns {
		opt(&opts)
	}

	f := &Fiber{
		id:     core.NewID(),
		sched:  sched,
		logger: opts.Logger,
		state:  core.FiberIdle,
	}
	f.ctx = coro.New(opts.StackSize, fn)

	f.transition(core.FiberRunning)
	f.resume()
	return f
}

// ID returns the fiber's unique identifier.
func (f *Fiber) ID() string { return f.id }

// State returns the fiber's current lifecycle state.
func (f *Fiber) State() core.FiberState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// IsRunning reports whether the entry function is currently executing.
func (f *Fiber) IsRunning() bool { return f.State() == core.FiberRunning }

// IsWaiting reports whether the fiber is suspended awaiting a wake.
func (f *Fiber) IsWaiting() bool { return f.State() == core.FiberWaiting }

// IsFinished reports whether the entry function has returned.
func (f *Fiber) IsFinished() bool { return f.State() == core.FiberFinished }

// Err returns the panic captured from the entry function, if it finished by
// panicking rather than returning.
func (f *Fiber) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// StackSize returns the stack reservation recorded on the fiber's context.
func (f *Fiber) StackSize() uint32 { return f.ctx.StackSize() }

// Wake resumes a waiting fiber, retiring its pending wake condition unfired
// ("last wake wins"). On a fiber that is not waiting it has no observable
// effect beyond a debug log: no notification, no state change. Wake must be
// called on the goroutine driving the fiber; foreign goroutines marshal
// through the scheduler's Dispatch.
func (f *Fiber) Wake() {
	f.mu.Lock()
	if f.state != core.FiberWaiting {
		state := f.state
		f.mu.Unlock()
		f.logger.Debug("fiber wake ignored", "fiber_id", f.id, "state", state.String())
		return
	}
	cond := f.cond
	f.cond = nil
	f.mu.Unlock()

	if cond != nil {
		cond.Retire()
		f.sched.Unschedule(cond)
	}

	f.transition(core.FiberRunning)
	f.resume()
}

// Unwind forcibly finishes a waiting fiber by unwinding its suspended stack,
// running any deferred cleanup in the entry function. The fiber transitions
// to finished without its running notification firing. A fiber that is not
// waiting is left untouched.
func (f *Fiber) Unwind() {
	f.mu.Lock()
	if f.state != core.FiberWaiting {
		f.mu.Unlock()
		return
	}
	cond := f.cond
	f.cond = nil
	f.mu.Unlock()

	if cond != nil {
		cond.Retire()
		f.sched.Unschedule(cond)
	}

	pushCurrent(f)
	f.ctx.Destroy()
	popCurrent(f)
	f.finish()
}

// resume transfers control into the fiber's context and deals with whatever
// it left behind: a newly installed wake condition, or completion.
func (f *Fiber) resume() {
	pushCurrent(f)
	f.ctx.Resume()
	popCurrent(f)

	if f.ctx.Done() {
		f.finish()
		return
	}

	// Suspended: register and arm the condition installed by the yield.
	// Arming happens only now, after the stack has switched out, so an
	// external source firing immediately cannot race the suspension.
	f.mu.Lock()
	cond := f.cond
	f.mu.Unlock()
	if cond != nil {
		f.sched.Schedule(cond)
		cond.Arm()
	}
}

// suspend installs cond as the fiber's active wake condition and transfers
// control back to the resumer. It returns when the fiber is next woken.
// Called from inside the fiber body only.
func (f *Fiber) suspend(cond core.WakeCondition) {
	f.mu.Lock()
	prev := f.cond
	f.cond = cond
	f.state = core.FiberWaiting
	f.mu.Unlock()

	// Installing a condition retires any predecessor.
	if prev != nil {
		prev.Retire()
		f.sched.Unschedule(prev)
	}

	f.obs.notifyWaiting()
	f.obs.notifyStateChanged(core.FiberWaiting)

	f.ctx.Yield()
}

func (f *Fiber) finish() {
	f.mu.Lock()
	if f.state == core.FiberFinished {
		f.mu.Unlock()
		return
	}
	f.state = core.FiberFinished
	f.err = f.ctx.Err()
	err := f.err
	f.mu.Unlock()

	if err != nil {
		f.logger.Error("fiber finished with panic", "fiber_id", f.id, "error", err)
	}
	f.obs.notifyFinished()
	f.obs.notifyStateChanged(core.FiberFinished)
}

// transition moves the fiber into state and emits the matching notification
// followed by the generic state-changed signal.
func (f *Fiber) transition(state core.FiberState) {
	f.mu.Lock()
	f.state = state
	f.mu.Unlock()

	switch state {
	case core.FiberRunning:
		f.obs.notifyRunning()
	case core.FiberWaiting:
		f.obs.notifyWaiting()
	case core.FiberFinished:
		f.obs.notifyFinished()
	}
	f.obs.notifyStateChanged(state)
}

// OnRunning registers fn to run on every transition into the running state.
// The returned func removes the registration.
func (f *Fiber) OnRunning(fn func()) (remove func()) { return f.obs.onRunning(fn) }

// OnWaiting registers fn to run on every transition into the waiting state.
func (f *Fiber) OnWaiting(fn func()) (remove func()) { return f.obs.onWaiting(fn) }

// OnFinished registers fn to run when the fiber finishes.
func (f *Fiber) OnFinished(fn func()) (remove func()) { return f.obs.onFinished(fn) }

// OnStateChanged registers fn to run on every transition, after the specific
// notification for that transition.
func (f *Fiber) OnStateChanged(fn func(core.FiberState)) (remove func()) {
	return f.obs.onStateChanged(fn)
}
