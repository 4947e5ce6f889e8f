// File: sched/task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Task state machine and wake protocol. The only legal state sequence is
// Ready -> Running -> {Pending -> Ready -> Running}* -> Done, with Done
// absorbing.

package sched

import "github.com/momentics/coreloop/api"

// State describes where a task is in its scheduling lifecycle.
type State uint8

const (
	// StateReady means the task is in the runnable queue awaiting a poll.
	StateReady State = iota
	// StateRunning means the task is being polled on its worker thread.
	StateRunning
	// StatePending means the task is suspended, waiting for exactly one wake.
	StatePending
	// StateDone is terminal: the computation finished.
	StateDone
)

// String returns the state name for logs and test failures.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StatePending:
		return "pending"
	case StateDone:
		return "done"
	}
	return "invalid"
}

// Task wraps one boxed computation with its scheduling state and a plain
// reference count. Strong references are held by the runnable queue (one
// per enqueued entry) and by live waker handles. A task belongs to exactly
// one worker for its entire lifetime, so the count needs no atomics.
type Task struct {
	state State
	fut   api.Future
	refs  int
	ex    *Executor
}

// retain adds one strong reference.
func (t *Task) retain() {
	t.refs++
}

// release drops one strong reference. When the last reference goes the
// computation is dropped too: an abandoned task is never polled again.
func (t *Task) release() {
	t.refs--
	if t.refs <= 0 {
		t.fut = nil
	}
}

// wakeByRef runs the wake protocol once.
//
// Pending is the only state that re-enqueues. A wake landing while the task
// is Running flips it to Ready without enqueueing: the in-progress poll is
// expected to observe the changed state when it returns. Ready and Done
// wakes are no-ops, so duplicate wakes can never double-enqueue.
func (t *Task) wakeByRef() {
	switch t.state {
	case StatePending:
		t.state = StateReady
		t.retain()
		t.ex.runnable.Add(t)
	case StateRunning:
		t.state = StateReady
	case StateReady, StateDone:
		// no-op
	}
}
