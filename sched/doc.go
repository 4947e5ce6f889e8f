// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package sched implements the per-worker cooperative scheduler: the task
// state machine, the runnable FIFO, the drain loop and the single-threaded
// reference-counted waker cell. One Executor per worker; nothing in this
// package is safe to share across workers.
package sched
