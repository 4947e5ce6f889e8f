//go:build linux

// File: reactor/poller_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7) poller. Registrations are edge-triggered; suspend points
// re-arm themselves by recording a fresh waker before every pending return,
// so one event per readiness transition is sufficient.

package reactor

import (
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/sys/unix"

	"github.com/momentics/coreloop/api"
)

const maxEvents = 128

// epollPoller implements api.Reactor over one epoll instance. All access is
// confined to the owning worker thread; the wait map needs no locking.
type epollPoller struct {
	epfd   int
	wait   map[int]api.Waker
	events []unix.EpollEvent
}

func newPlatformPoller() (api.Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &epollPoller{
		epfd:   epfd,
		wait:   make(map[int]api.Waker),
		events: make([]unix.EpollEvent, maxEvents),
	}, nil
}

// Register adds fd to the epoll interest list. The interest set is fixed
// for the registration's lifetime.
func (p *epollPoller) Register(fd int, interest api.Interest) error {
	ev := unix.EpollEvent{
		Events: unix.EPOLLET,
		Fd:     safecast.MustConvert[int32](fd),
	}
	if interest&api.InterestRead != 0 {
		ev.Events |= unix.EPOLLIN
	}
	if interest&api.InterestWrite != 0 {
		ev.Events |= unix.EPOLLOUT
	}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl add fd %d: %w", fd, err)
	}
	return nil
}

// Deregister removes fd from epoll and releases any waker stored for it, so
// no stale wake for the key fires afterwards.
func (p *epollPoller) Deregister(fd int) error {
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("epoll ctl del fd %d: %w", fd, err)
	}
	if w, ok := p.wait[fd]; ok {
		delete(p.wait, fd)
		w.Drop()
	}
	return nil
}

// RecordWait stores a clone of w as the single wake slot for fd, releasing
// whatever waker previously occupied the slot. Invoked by a suspend point
// immediately before it returns a pending result.
func (p *epollPoller) RecordWait(fd int, w api.Waker) {
	if prev, ok := p.wait[fd]; ok {
		prev.Drop()
	}
	p.wait[fd] = w.Clone()
}

// Wait blocks with no timeout until readiness events arrive, then removes
// and wakes the stored waker for each reported key. Blocking indefinitely
// is deliberate: the worker has no other work when its queue is empty.
func (p *epollPoller) Wait() error {
	for {
		n, err := unix.EpollWait(p.epfd, p.events, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("epoll wait: %w", err)
		}
		for i := 0; i < n; i++ {
			fd := int(p.events[i].Fd)
			if w, ok := p.wait[fd]; ok {
				delete(p.wait, fd)
				w.Wake()
			}
		}
		return nil
	}
}

// Close releases stored wakers and the epoll descriptor.
func (p *epollPoller) Close() error {
	for fd, w := range p.wait {
		delete(p.wait, fd)
		w.Drop()
	}
	return unix.Close(p.epfd)
}
