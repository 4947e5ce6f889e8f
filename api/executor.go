// File: api/executor.go
// Author: momentics <momentics@gmail.com>

package api

// Executor is the worker-local cooperative scheduler. Spawn is thread
// confined: it is reachable only through a poll Context, so spawned work
// always executes on the spawning worker and never migrates.
type Executor interface {
	// Spawn creates a Ready task for f and appends it to this worker's
	// runnable queue.
	Spawn(f Future)

	// Reactor returns this worker's readiness reactor.
	Reactor() Reactor
}
