// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Per-worker readiness reactor contract over poll-mode backends (epoll on
// Linux). One reactor per worker, never shared across workers.

package api

// Interest selects the readiness events a registration subscribes to. The
// interest set is fixed at registration time.
type Interest uint8

const (
	// InterestRead subscribes to read readiness.
	InterestRead Interest = 1 << iota
	// InterestWrite subscribes to write readiness.
	InterestWrite
)

// Reactor multiplexes OS readiness events for one worker and maps each
// readiness key (file descriptor) to the single waker currently interested
// in it.
type Reactor interface {
	// Register adds fd to the multiplexer with a fixed interest set.
	// Registration failure is a setup-time precondition violation.
	Register(fd int, interest Interest) error

	// Deregister removes fd and releases any waker stored for it, so no
	// stale wake for the key can fire afterwards. Called exactly once, at
	// resource destruction.
	Deregister(fd int) error

	// RecordWait stores a clone of w as the wake slot for fd, overwriting
	// and releasing whatever waker was previously stored. The registry
	// holds a single wake slot per key, not a queue: a fd with both a read
	// and a write suspended keeps only the most recent registrant.
	RecordWait(fd int, w Waker)

	// Wait blocks with no timeout until at least one readiness event
	// arrives, then removes and wakes the stored waker for each reported
	// key. Events for keys with no stored waker are dropped.
	Wait() error

	// Close releases the multiplexer and any stored wakers.
	Close() error
}
