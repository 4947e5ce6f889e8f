// File: api/waker.go
// Author: momentics <momentics@gmail.com>
//
// Reference-counted wake handle contract. The reference count is plain
// (non-atomic): every operation on a given waker happens on the single
// worker thread that owns its task. Wakers must never cross workers.

package api

// Waker is the alert mechanism a suspended task uses to request
// re-scheduling. Handles are reference counted; the count is maintained
// without atomics, which is valid only under strict worker confinement.
type Waker interface {
	// Wake invokes the task wake protocol and consumes one reference.
	Wake()

	// WakeByRef invokes the task wake protocol without consuming the
	// caller's reference.
	WakeByRef()

	// Clone returns a handle to the same task, incrementing the reference
	// count. Cloning has no other side effects.
	Clone() Waker

	// Drop releases one reference. When the last reference is released the
	// underlying task allocation is reclaimed.
	Drop()
}
