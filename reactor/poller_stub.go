//go:build !linux

// File: reactor/poller_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub for platforms without a poller backend.

package reactor

import (
	"errors"

	"github.com/momentics/coreloop/api"
)

// ErrUnsupported reports that no poller backend exists for this platform.
var ErrUnsupported = errors.New("reactor: no poller backend for this platform")

func newPlatformPoller() (api.Reactor, error) {
	return nil, ErrUnsupported
}
