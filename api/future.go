// File: api/future.go
// Author: momentics <momentics@gmail.com>
//
// Cooperative computation contract: a Future is polled by its worker until
// it reports completion, suspending by returning false after arranging a
// wake with some wake source.

package api

// Future is one suspendable unit of work. Poll runs the computation until
// it either completes (returns true) or cannot progress (returns false).
//
// A Future that returns false MUST have registered the context's Waker with
// a wake source first, or its task stalls forever; the runtime does not
// detect an unmet wake arrangement.
type Future interface {
	Poll(cx *Context) bool
}

// Poll carries the outcome of polling a typed sub-operation once: either a
// ready Value or a pending signal.
type Poll[T any] struct {
	Value T
	Ready bool
}

// Ready wraps a completed value.
func Ready[T any](v T) Poll[T] {
	return Poll[T]{Value: v, Ready: true}
}

// Pending reports that the operation suspended after recording a wake.
func Pending[T any]() Poll[T] {
	return Poll[T]{}
}

// Context is handed to every Poll call. It carries the waker tied to the
// task being polled and the executor owning it. Contexts are only valid for
// the duration of the Poll call they were created for.
type Context struct {
	waker Waker
	exec  Executor
}

// NewContext builds a poll context. The waker reference is borrowed: the
// scheduler releases it after the poll returns, so code that needs to keep
// it past the call must Clone it.
func NewContext(w Waker, ex Executor) *Context {
	return &Context{waker: w, exec: ex}
}

// Waker returns the wake handle for the task being polled.
func (cx *Context) Waker() Waker {
	return cx.waker
}

// Executor returns the worker-local executor driving this poll.
func (cx *Context) Executor() Executor {
	return cx.exec
}
