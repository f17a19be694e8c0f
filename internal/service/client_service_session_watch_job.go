// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/sim-sekolah/internal/logger"
)

const defaultSessionCheckInterval = 30 * time.Second

// sessionChecker is the part of the session the watcher drives.
type sessionChecker interface {
	Check(ctx context.Context) bool
}

type sessionWatchJob struct {
	session sessionChecker

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSessionWatchJob creates a watcher that calls session.Check on a ticker.
// The job is idle until Start is called.
func NewSessionWatchJob(session sessionChecker, logger *logger.Logger) SessionWatchJob {
	return &sessionWatchJob{session: session, logger: logger}
}

// Start implements SessionWatchJob. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *sessionWatchJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSessionCheckInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	j.logger.Debug().
		Str("func", "sessionWatchJob.Start").
		Dur("interval", interval).
		Msg("session watcher started")

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if j.session.Check(jobCtx) {
					j.logger.Info().Str("func", "sessionWatchJob").Msg("session ended by watcher")
				}
			}
		}
	}()
}

// Stop implements SessionWatchJob. Safe to call when the job is not running.
func (j *sessionWatchJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
