// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package reactor provides the per-worker readiness poller: an epoll wrapper
// on Linux plus a registry mapping each readiness key (file descriptor) to
// the single waker currently interested in it. One poller per worker, never
// shared across workers.
package reactor
