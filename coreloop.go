// File: coreloop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package coreloop is a minimal single-core-pinned asynchronous execution
// runtime: N independent single-threaded cooperative schedulers, one per
// pinned OS thread, each paired with its own epoll reactor. Workers share
// nothing; a replicated SO_REUSEPORT listener inside every worker lets the
// kernel spread incoming connections across them.
//
// Run starts the whole runtime and blocks forever in normal operation.
// Work is added from inside a running worker via the api.Context handed to
// every poll; see the api, sched, reactor and netio packages.
package coreloop

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/coreloop/affinity"
	"github.com/momentics/coreloop/api"
	"github.com/momentics/coreloop/config"
	"github.com/momentics/coreloop/reactor"
	"github.com/momentics/coreloop/sched"
)

// Factory produces one independent copy of the user computation per worker.
// Each copy is spawned as its worker's first task and must never be shared
// between workers.
type Factory func() api.Future

// Run determines the worker count from configuration (default: logical CPU
// count), spins up one OS thread per worker pinned to its logical core, and
// runs each worker's drain/wait loop forever. It returns only after every
// worker has terminated, an abnormal condition. Setup failures abort the
// process: a misconfigured worker cannot usefully serve traffic.
func Run(factory Factory) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel)
	log.Info().Int("workers", cfg.Workers).Msg("coreloop: starting workers")

	var g errgroup.Group
	for i := 0; i < cfg.Workers; i++ {
		workerID := i
		fut := factory()
		g.Go(func() error {
			return runWorker(log, workerID, fut)
		})
	}
	err = g.Wait()
	log.Error().Err(err).Msg("coreloop: all workers stopped")
	return err
}

// runWorker is the whole life of one worker: lock the thread, pin it, build
// the reactor and executor, spawn the first task, loop forever.
func runWorker(log zerolog.Logger, id int, fut api.Future) error {
	runtime.LockOSThread()

	if err := affinity.Pin(id); err != nil {
		log.Fatal().Int("worker", id).Err(err).Msg("coreloop: pin failed")
	}

	p, err := reactor.NewPoller()
	if err != nil {
		log.Fatal().Int("worker", id).Err(err).Msg("coreloop: poller setup failed")
	}

	ex := sched.NewExecutor(id, p)
	ex.Spawn(fut)
	if err := ex.Run(); err != nil {
		return fmt.Errorf("worker %d: %w", id, err)
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
