// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package netio provides the async socket resources of the runtime: a
// replicated SO_REUSEPORT listener and a non-blocking byte stream. Each
// resource owns exactly one socket, registers with its worker's reactor at
// construction and deregisters at Close. Read, write and accept are suspend
// points: on would-block they record the current waker with the reactor and
// return pending; any other error is delivered to the caller as-is, never
// retried at this layer.
//
// Known sharp edge: the reactor keeps a single wake slot per descriptor, so
// a stream with both a read and a write suspended at once only guarantees a
// wake for the most recently suspended operation.
package netio
