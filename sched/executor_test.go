// Copyright 2026 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// File: sched/executor_test.go
// Tests for the drain loop, wake protocol and task state machine.
// White box on purpose: the state sequence and reference counts are the
// contract under test.

package sched

import (
	"testing"

	"github.com/momentics/coreloop/api"
	"github.com/momentics/coreloop/fake"
)

// futureFunc adapts a closure to api.Future.
type futureFunc func(cx *api.Context) bool

func (f futureFunc) Poll(cx *api.Context) bool { return f(cx) }

func newTestExecutor() (*Executor, *fake.Reactor) {
	r := fake.NewReactor()
	return NewExecutor(0, r), r
}

// TestStateSequence walks one task through the only legal lifecycle:
// Ready -> Running -> Pending -> Ready -> Running -> Done.
func TestStateSequence(t *testing.T) {
	ex, _ := newTestExecutor()

	var seen []State
	var saved api.Waker
	polls := 0
	ex.Spawn(futureFunc(func(cx *api.Context) bool {
		polls++
		if polls == 1 {
			saved = cx.Waker().Clone()
			return false
		}
		return true
	}))

	task := ex.runnable.Peek().(*Task)
	seen = append(seen, task.state)

	ex.Drain()
	seen = append(seen, task.state)

	saved.Wake()
	seen = append(seen, task.state)
	if ex.runnable.Length() != 1 {
		t.Fatalf("woken pending task not enqueued, queue len %d", ex.runnable.Length())
	}

	ex.Drain()
	seen = append(seen, task.state)

	want := []State{StateReady, StatePending, StateReady, StateDone}
	for i, s := range want {
		if seen[i] != s {
			t.Fatalf("state[%d] = %v, want %v (full: %v)", i, seen[i], s, seen)
		}
	}
	if polls != 2 {
		t.Fatalf("polls = %d, want 2", polls)
	}
}

// TestWakeOnReadyIsNoOp verifies a wake for an already queued task does not
// alter the queue.
func TestWakeOnReadyIsNoOp(t *testing.T) {
	ex, _ := newTestExecutor()
	tk := &Task{state: StateReady, fut: futureFunc(func(cx *api.Context) bool { return true }), refs: 1, ex: ex}
	ex.runnable.Add(tk)

	w := newWaker(tk)
	defer w.Drop()
	w.WakeByRef()
	w.WakeByRef()

	if ex.runnable.Length() != 1 {
		t.Fatalf("queue len = %d after wakes on Ready, want 1", ex.runnable.Length())
	}
	if tk.state != StateReady {
		t.Fatalf("state = %v, want ready", tk.state)
	}
}

// TestWakeOnDoneIsNoOp verifies Done is absorbing.
func TestWakeOnDoneIsNoOp(t *testing.T) {
	ex, _ := newTestExecutor()
	tk := &Task{state: StateReady, fut: futureFunc(func(cx *api.Context) bool { return true }), refs: 1, ex: ex}
	ex.runnable.Add(tk)
	w := newWaker(tk)
	defer w.Drop()

	ex.Drain()
	if tk.state != StateDone {
		t.Fatalf("state = %v, want done", tk.state)
	}

	w.WakeByRef()
	if tk.state != StateDone {
		t.Fatalf("wake left Done, state = %v", tk.state)
	}
	if ex.runnable.Length() != 0 {
		t.Fatalf("queue len = %d after wake on Done, want 0", ex.runnable.Length())
	}
}

// TestDuplicateWakesEnqueueOnce verifies a task is present in the queue at
// most once regardless of how many wakers fire.
func TestDuplicateWakesEnqueueOnce(t *testing.T) {
	ex, _ := newTestExecutor()

	var w1, w2 api.Waker
	ex.Spawn(futureFunc(func(cx *api.Context) bool {
		if w1 == nil {
			w1 = cx.Waker().Clone()
			w2 = cx.Waker().Clone()
			return false
		}
		return true
	}))
	ex.Drain()

	w1.WakeByRef()
	w2.WakeByRef()
	w1.WakeByRef()
	if ex.runnable.Length() != 1 {
		t.Fatalf("queue len = %d after duplicate wakes, want 1", ex.runnable.Length())
	}
	w1.Drop()
	w2.Drop()
}

// TestSelfWakeDuringPollNotRequeued pins down the preserved quirk: a wake
// arriving while the task is Running flips it to Ready but does not
// enqueue, and the drain loop leaves such a task alone. The task ends the
// pass Ready and unqueued.
func TestSelfWakeDuringPollNotRequeued(t *testing.T) {
	ex, _ := newTestExecutor()

	polls := 0
	ex.Spawn(futureFunc(func(cx *api.Context) bool {
		polls++
		cx.Waker().WakeByRef()
		return false
	}))
	task := ex.runnable.Peek().(*Task)

	ex.Drain()

	if polls != 1 {
		t.Fatalf("polls = %d, want 1", polls)
	}
	if task.state != StateReady {
		t.Fatalf("state = %v, want ready", task.state)
	}
	if ex.runnable.Length() != 0 {
		t.Fatalf("queue len = %d, want 0 (self-woken task is not requeued)", ex.runnable.Length())
	}
}

// TestSpawnDuringDrainServedSameDrain verifies a task spawned mid-pass is
// served before Drain returns (fresh snapshot per pass until empty).
func TestSpawnDuringDrainServedSameDrain(t *testing.T) {
	ex, _ := newTestExecutor()

	childRan := false
	ex.Spawn(futureFunc(func(cx *api.Context) bool {
		cx.Executor().Spawn(futureFunc(func(cx *api.Context) bool {
			childRan = true
			return true
		}))
		return true
	}))

	ex.Drain()
	if !childRan {
		t.Fatal("task spawned during drain was not served by the same drain")
	}
}

// TestSnapshotOrder verifies tasks are serviced in snapshot (FIFO) order.
func TestSnapshotOrder(t *testing.T) {
	ex, _ := newTestExecutor()

	var order []int
	for i := 0; i < 3; i++ {
		id := i
		ex.Spawn(futureFunc(func(cx *api.Context) bool {
			order = append(order, id)
			return true
		}))
	}
	ex.Drain()

	for i, id := range order {
		if id != i {
			t.Fatalf("service order = %v, want FIFO", order)
		}
	}
}

// TestReactorWakeRequeues runs a suspend through the fake reactor's wake
// slot and checks one readiness event re-enqueues the task exactly once.
func TestReactorWakeRequeues(t *testing.T) {
	ex, r := newTestExecutor()

	const fd = 7
	polls := 0
	ex.Spawn(futureFunc(func(cx *api.Context) bool {
		polls++
		if polls == 1 {
			r.RecordWait(fd, cx.Waker())
			return false
		}
		return true
	}))
	task := ex.runnable.Peek().(*Task)

	ex.Drain()
	if task.state != StatePending {
		t.Fatalf("state = %v, want pending", task.state)
	}

	r.Fire(fd)
	if task.state != StateReady || ex.runnable.Length() != 1 {
		t.Fatalf("after fire: state %v queue %d, want ready/1", task.state, ex.runnable.Length())
	}
	r.Fire(fd) // slot consumed: second fire is a no-op
	if ex.runnable.Length() != 1 {
		t.Fatalf("queue len = %d after second fire, want 1", ex.runnable.Length())
	}

	ex.Drain()
	if task.state != StateDone {
		t.Fatalf("state = %v, want done", task.state)
	}
}
