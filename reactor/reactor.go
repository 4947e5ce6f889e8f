// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral poller factory. Platform implementations live in
// poller_linux.go and poller_stub.go, guarded by build tags.

package reactor

import "github.com/momentics/coreloop/api"

// NewPoller constructs the platform readiness poller for one worker.
// Failure is a setup-time precondition violation: a worker without a poller
// cannot serve traffic.
func NewPoller() (api.Reactor, error) {
	return newPlatformPoller()
}
