// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides test doubles for the api contracts.
package fake

import "github.com/momentics/coreloop/api"

// Reactor records registration and wake-slot traffic for scheduler and
// resource tests. Wait never blocks.
type Reactor struct {
	Registered map[int]api.Interest
	Waits      map[int]api.Waker
	WaitCalls  int
}

// NewReactor builds an empty recording reactor.
func NewReactor() *Reactor {
	return &Reactor{
		Registered: make(map[int]api.Interest),
		Waits:      make(map[int]api.Waker),
	}
}

func (f *Reactor) Register(fd int, interest api.Interest) error {
	f.Registered[fd] = interest
	return nil
}

func (f *Reactor) Deregister(fd int) error {
	delete(f.Registered, fd)
	if w, ok := f.Waits[fd]; ok {
		delete(f.Waits, fd)
		w.Drop()
	}
	return nil
}

func (f *Reactor) RecordWait(fd int, w api.Waker) {
	if prev, ok := f.Waits[fd]; ok {
		prev.Drop()
	}
	f.Waits[fd] = w.Clone()
}

// Fire wakes and removes the stored waker for fd, mimicking one readiness
// event.
func (f *Reactor) Fire(fd int) {
	if w, ok := f.Waits[fd]; ok {
		delete(f.Waits, fd)
		w.Wake()
	}
}

func (f *Reactor) Wait() error {
	f.WaitCalls++
	return nil
}

func (f *Reactor) Close() error {
	for fd, w := range f.Waits {
		delete(f.Waits, fd)
		w.Drop()
	}
	return nil
}
