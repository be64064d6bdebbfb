// Package testutil contains helper fakes used across tests to reduce
// boilerplate when exercising the suspension protocol: counting wakers, a
// recording scheduler, a controllable event emitter and a hand-driven task
// handle. These helpers are intentionally minimal and avoid adding
// third-party dependencies. They are not intended for production usage.
package testutil
