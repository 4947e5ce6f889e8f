//go:build !linux

// File: netio/netio_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub resources for platforms without a socket backend.

package netio

import (
	"errors"
	"net/netip"

	"github.com/momentics/coreloop/api"
)

// ErrUnsupported reports that no socket backend exists for this platform.
var ErrUnsupported = errors.New("netio: no socket backend for this platform")

// Backlog is the fixed listen backlog used by supported platforms.
const Backlog = 1024

// Listener is a placeholder for the async listening resource.
type Listener struct{}

// Conn is a placeholder for the async byte stream.
type Conn struct{}

// AcceptResult is one item of the accept sequence.
type AcceptResult struct {
	Conn *Conn
	Err  error
}

// IOResult is the outcome of one read or write attempt.
type IOResult struct {
	N   int
	Err error
}

// AcceptStream is a placeholder for the lazy accept sequence.
type AcceptStream struct{}

func Listen(cx *api.Context, addr string) (*Listener, error) { return nil, ErrUnsupported }

func (l *Listener) Addr() (netip.AddrPort, error) { return netip.AddrPort{}, ErrUnsupported }

func (l *Listener) PollAccept(cx *api.Context) api.Poll[AcceptResult] {
	return api.Ready(AcceptResult{Err: ErrUnsupported})
}

func (l *Listener) Incoming() *AcceptStream { return &AcceptStream{} }

func (l *Listener) Close() error { return ErrUnsupported }

func (s *AcceptStream) PollNext(cx *api.Context) api.Poll[AcceptResult] {
	return api.Ready(AcceptResult{Err: ErrUnsupported})
}

func (c *Conn) PollRead(cx *api.Context, buf []byte) api.Poll[IOResult] {
	return api.Ready(IOResult{Err: ErrUnsupported})
}

func (c *Conn) PollWrite(cx *api.Context, buf []byte) api.Poll[IOResult] {
	return api.Ready(IOResult{Err: ErrUnsupported})
}

func (c *Conn) CloseWrite() error { return ErrUnsupported }

func (c *Conn) Close() error { return ErrUnsupported }
