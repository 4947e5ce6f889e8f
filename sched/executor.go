// File: sched/executor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker-local executor: runnable FIFO plus the drain/wait loop. The FIFO
// is github.com/eapache/queue; entries are *Task, each holding one strong
// reference while enqueued.

package sched

import (
	"github.com/eapache/queue"

	"github.com/momentics/coreloop/api"
)

// Executor drains its runnable queue to completion, then blocks on its
// reactor; readiness events resolve to waker invocations that refill the
// queue, closing the loop. Executors are strictly single-threaded and must
// only be driven from the OS thread that owns them.
type Executor struct {
	id       int
	runnable *queue.Queue
	reactor  api.Reactor
}

// NewExecutor builds the scheduler half of one worker around its reactor.
func NewExecutor(id int, r api.Reactor) *Executor {
	return &Executor{
		id:       id,
		runnable: queue.New(),
		reactor:  r,
	}
}

// ID returns the worker index this executor belongs to.
func (ex *Executor) ID() int {
	return ex.id
}

// Reactor returns the worker's readiness reactor.
func (ex *Executor) Reactor() api.Reactor {
	return ex.reactor
}

// Spawn creates a Ready task for f and appends it to the runnable queue.
// The queue entry is the task's initial strong reference.
func (ex *Executor) Spawn(f api.Future) {
	t := &Task{state: StateReady, fut: f, refs: 1, ex: ex}
	ex.runnable.Add(t)
}

// Drain serves the runnable queue until it is empty. Each pass swaps the
// current queue contents out into a fixed-size snapshot, so computations
// that spawn or wake more work mid-pass feed the next snapshot instead of
// growing the current one without bound. Tasks woken during a pass are
// served before Drain returns.
func (ex *Executor) Drain() {
	for ex.runnable.Length() > 0 {
		n := ex.runnable.Length()
		for i := 0; i < n; i++ {
			t := ex.runnable.Remove().(*Task)
			ex.poll(t)
		}
	}
}

// poll runs one poll attempt for a dequeued task and settles its state.
func (ex *Executor) poll(t *Task) {
	if t.state == StateDone || t.fut == nil {
		// Entry for an abandoned or finished task; drop the queue reference.
		t.release()
		return
	}

	t.state = StateRunning
	w := newWaker(t)
	done := t.fut.Poll(api.NewContext(w, ex))
	if done {
		t.state = StateDone
	} else if t.state == StateRunning {
		// No wake raced with the poll; suspend until exactly one wake.
		t.state = StatePending
	}
	// A state other than Running after a pending poll means a wake landed
	// mid-poll and already flipped it to Ready; it is left as-is here.
	w.Drop()
	t.release()
}

// Wait blocks on the worker's reactor until readiness events arrive.
func (ex *Executor) Wait() error {
	return ex.reactor.Wait()
}

// Run is the perpetual worker loop: drain the runnable queue to empty, then
// block for readiness events, forever. It returns only if the reactor
// fails, an abnormal condition.
func (ex *Executor) Run() error {
	for {
		ex.Drain()
		if err := ex.Wait(); err != nil {
			return err
		}
	}
}
