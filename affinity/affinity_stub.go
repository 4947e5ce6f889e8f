//go:build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>

package affinity

import "errors"

func pinPlatform(cpuID int) error {
	return errors.New("affinity: thread pinning not supported on this platform")
}
