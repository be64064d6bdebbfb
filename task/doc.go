// Package task provides promise-style handles for work running outside any
// fiber body. Go starts a function on its own goroutine and returns a Task
// whose completion a fiber can wait on via fiber.Await; the handle satisfies
// core.TaskHandle, so it plugs straight into the future wake condition.
//
// Completion is observable exactly once, whether the function returned a
// value, returned an error, or the task was canceled first. Cancellation is
// surfaced as core.ErrTaskCanceled from Result, never swallowed as success.
package task
