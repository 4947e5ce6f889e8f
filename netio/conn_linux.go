//go:build linux

// File: netio/conn_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Async byte stream over one connected non-blocking socket, registered with
// its worker's reactor for read+write readiness for its whole lifetime.

package netio

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/coreloop/api"
)

// Conn owns exactly one connected socket. Only the owning Conn may touch
// the descriptor. PollRead and PollWrite are its suspend points; they share
// the reactor's single wake slot for the descriptor, so only the most
// recently suspended of a simultaneous read and write is guaranteed a wake.
type Conn struct {
	fd      int
	reactor api.Reactor
	closed  bool
}

// IOResult is the outcome of one read or write attempt.
type IOResult struct {
	N   int
	Err error
}

// newConn wraps an already connected descriptor: TCP_NODELAY, non-blocking,
// registered read+write. The fd is closed on any construction failure.
func newConn(r api.Reactor, fd int) (*Conn, error) {
	_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("netio: nonblock: %w", err)
	}
	if err := r.Register(fd, api.InterestRead|api.InterestWrite); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return &Conn{fd: fd, reactor: r}, nil
}

// PollRead attempts one non-blocking read into buf. Would-block records the
// current waker and suspends; a later readiness event drives the next
// attempt against whatever bytes are available then. Other errors are
// delivered immediately and never retried here. N == 0 with a nil error is
// end of stream.
func (c *Conn) PollRead(cx *api.Context, buf []byte) api.Poll[IOResult] {
	n, err := unix.Read(c.fd, buf)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		c.reactor.RecordWait(c.fd, cx.Waker())
		return api.Pending[IOResult]()
	}
	if n < 0 {
		n = 0
	}
	return api.Ready(IOResult{N: n, Err: err})
}

// PollWrite attempts one non-blocking write from buf; semantics mirror
// PollRead. Partial writes are ordinary results, not retried internally.
func (c *Conn) PollWrite(cx *api.Context, buf []byte) api.Poll[IOResult] {
	n, err := unix.Write(c.fd, buf)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		c.reactor.RecordWait(c.fd, cx.Waker())
		return api.Pending[IOResult]()
	}
	if n < 0 {
		n = 0
	}
	return api.Ready(IOResult{N: n, Err: err})
}

// CloseWrite shuts down the write half, signalling end of stream to the
// peer while reads stay usable.
func (c *Conn) CloseWrite() error {
	if err := unix.Shutdown(c.fd, unix.SHUT_WR); err != nil {
		return fmt.Errorf("netio: shutdown: %w", err)
	}
	return nil
}

// Close shuts down the write half, deregisters the descriptor from the
// reactor and closes it. Exactly once; a suspended operation on this conn
// will never see a stale wake afterwards.
func (c *Conn) Close() error {
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	_ = unix.Shutdown(c.fd, unix.SHUT_WR)
	derr := c.reactor.Deregister(c.fd)
	cerr := unix.Close(c.fd)
	if derr != nil {
		return derr
	}
	return cerr
}
