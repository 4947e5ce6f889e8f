// File: netio/errors.go
// Author: momentics <momentics@gmail.com>

package netio

import "errors"

// ErrClosed reports a second Close of an already destroyed resource.
// Deregistration must happen exactly once.
var ErrClosed = errors.New("netio: resource already closed")
