package coro

import (
	"fmt"
	"runtime/debug"
)

// panicError wraps a value recovered from an entry function together with the
// stack trace captured at recovery time.
type panicError struct {
	value any
	stack []byte
}

func newPanicError(v any) error {
	return &panicError{value: v, stack: debug.Stack()}
}

func (p *panicError) Error() string {
	return fmt.Sprintf("coro: entry panicked: %v", p.value)
}

// Unwrap exposes the panic value when it was itself an error, enabling
// errors.Is / errors.As matching across the recovery boundary.
func (p *panicError) Unwrap() error {
	err, ok := p.value.(error)
	if !ok {
		return nil
	}
	return err
}

// Stack returns the goroutine stack captured when the panic was recovered.
func (p *panicError) Stack() []byte { return p.stack }
