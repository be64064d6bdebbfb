package core

// FiberState describes where a fiber is in its lifecycle. A fiber is created
// in FiberIdle, but because creation synchronously runs the entry function up
// to its first suspension, callers never observe FiberIdle after the creating
// call returns.
type FiberState int

const (
	// FiberIdle means the fiber exists but its entry function has not started.
	FiberIdle FiberState = iota
	// FiberRunning means the entry function is executing. With nested fibers
	// it may not be the innermost active fiber.
	FiberRunning
	// FiberWaiting means the fiber has yielded and holds an active
	// WakeCondition (possibly a manual one) deciding when it resumes.
	FiberWaiting
	// FiberFinished means the entry function has returned (or panicked).
	// No further wake is valid.
	FiberFinished
)

// String returns the lower-case name of the state.
func (s FiberState) String() string {
	switch s {
	case FiberIdle:
		return "idle"
	case FiberRunning:
		return "running"
	case FiberWaiting:
		return "waiting"
	case FiberFinished:
		return "finished"
	default:
		return "unknown"
	}
}
