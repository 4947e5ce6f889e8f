// File: sched/waker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-threaded reference-counted waker cell. This is the load-bearing
// decision of the subsystem: the count is a plain int, trading the ability
// to wake a task from a foreign thread for the elimination of atomic memory
// traffic. Valid only because every operation on a given waker happens on
// the one worker thread that owns its task.

package sched

import "github.com/momentics/coreloop/api"

// waker implements api.Waker over a shared Task cell. Each handle pins one
// strong reference on the task; Clone mints a new handle with its own
// reference, Drop releases it.
type waker struct {
	t *Task
}

// newWaker mints a handle, taking one strong reference.
func newWaker(t *Task) *waker {
	t.retain()
	return &waker{t: t}
}

// Wake runs the wake protocol and consumes this handle's reference.
func (w *waker) Wake() {
	w.t.wakeByRef()
	w.t.release()
}

// WakeByRef runs the wake protocol, borrowing the handle.
func (w *waker) WakeByRef() {
	w.t.wakeByRef()
}

// Clone returns a new handle to the same task. The pointee is untouched
// beyond the reference count.
func (w *waker) Clone() api.Waker {
	return newWaker(w.t)
}

// Drop releases this handle's reference.
func (w *waker) Drop() {
	w.t.release()
}
