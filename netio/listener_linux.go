//go:build linux

// File: netio/listener_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Replicated async TCP listener. Every worker constructs its own listener
// against the same address; SO_REUSEPORT lets the kernel distribute
// incoming connections across the replicas. Share-nothing scaling: the
// listeners never know about each other.

package netio

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/momentics/coreloop/api"
)

// Backlog is the fixed listen(2) backlog for every listener.
const Backlog = 1024

// Listener owns one listening socket registered read-only with its worker's
// reactor. PollAccept is its single suspend point.
type Listener struct {
	fd      int
	reactor api.Reactor
	closed  bool
}

// AcceptResult is one item of the accept sequence: either a connected
// stream or a per-attempt error. Errors never terminate the sequence.
type AcceptResult struct {
	Conn *Conn
	Err  error
}

// Listen binds a dual-stack listening socket on addr ("host:port", host may
// be empty for the wildcard), sets SO_REUSEADDR and SO_REUSEPORT, switches
// it non-blocking with backlog 1024 and registers it with the current
// worker's reactor for read readiness. Any failure here is a setup-time
// precondition violation for the worker.
func Listen(cx *api.Context, addr string) (*Listener, error) {
	sa, err := resolveInet6(addr)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_INET6, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("netio: socket: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("netio: dual-stack: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("netio: reuseaddr: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("netio: reuseport: %w", err)
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("netio: bind %s: %w", addr, err)
	}
	if err := unix.Listen(fd, Backlog); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("netio: listen %s: %w", addr, err)
	}

	r := cx.Executor().Reactor()
	if err := r.Register(fd, api.InterestRead); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return &Listener{fd: fd, reactor: r}, nil
}

// Addr returns the bound address, resolving the actual port for ephemeral
// binds.
func (l *Listener) Addr() (netip.AddrPort, error) {
	sa, err := unix.Getsockname(l.fd)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("netio: getsockname: %w", err)
	}
	sa6, ok := sa.(*unix.SockaddrInet6)
	if !ok {
		return netip.AddrPort{}, fmt.Errorf("netio: unexpected sockaddr %T", sa)
	}
	addr := netip.AddrFrom16(sa6.Addr).Unmap()
	return netip.AddrPortFrom(addr, uint16(sa6.Port)), nil
}

// PollAccept attempts one non-blocking accept. Would-block records the
// current waker with the reactor and suspends; the next read-readiness
// event on the listener drives a subsequent attempt. Any other error is
// delivered as a ready item of the sequence.
func (l *Listener) PollAccept(cx *api.Context) api.Poll[AcceptResult] {
	nfd, _, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		l.reactor.RecordWait(l.fd, cx.Waker())
		return api.Pending[AcceptResult]()
	}
	if err != nil {
		return api.Ready(AcceptResult{Err: fmt.Errorf("netio: accept: %w", err)})
	}
	c, err := newConn(l.reactor, nfd)
	if err != nil {
		return api.Ready(AcceptResult{Err: err})
	}
	return api.Ready(AcceptResult{Conn: c})
}

// Incoming adapts the listener to its lazy accept sequence.
func (l *Listener) Incoming() *AcceptStream {
	return &AcceptStream{l: l}
}

// Close deregisters the listener and closes the socket. Exactly once.
func (l *Listener) Close() error {
	if l.closed {
		return ErrClosed
	}
	l.closed = true
	derr := l.reactor.Deregister(l.fd)
	cerr := unix.Close(l.fd)
	if derr != nil {
		return derr
	}
	return cerr
}

// AcceptStream is the lazy, never-terminating sequence of incoming
// connections; per-attempt failures are items, not termination.
type AcceptStream struct {
	l *Listener
}

// PollNext yields the next accept outcome or suspends.
func (s *AcceptStream) PollNext(cx *api.Context) api.Poll[AcceptResult] {
	return s.l.PollAccept(cx)
}

// resolveInet6 parses "host:port" into an AF_INET6 sockaddr; IPv4 hosts map
// onto the dual-stack socket as v4-mapped addresses.
func resolveInet6(addr string) (*unix.SockaddrInet6, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("netio: address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return nil, fmt.Errorf("netio: address %q: bad port", addr)
	}
	sa := &unix.SockaddrInet6{Port: port}
	if host != "" {
		ip, err := netip.ParseAddr(host)
		if err != nil {
			return nil, fmt.Errorf("netio: address %q: %w", addr, err)
		}
		sa.Addr = ip.As16()
	}
	return sa, nil
}
