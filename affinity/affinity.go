// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations
// are located in separate files guarded by build tags.

package affinity

// Pin binds the current OS thread to the given logical CPU. The caller must
// have locked the goroutine to its thread first (runtime.LockOSThread).
// On unsupported platforms returns an error.
func Pin(cpuID int) error {
	return pinPlatform(cpuID)
}
