// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package api defines the contracts shared between the coreloop scheduler,
// reactor and async I/O resources. Implementations live in the sched,
// reactor and netio packages; test doubles in fake.
package api
