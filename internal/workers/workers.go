// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/sim-sekolah/internal/service"
)

// Workers starts and stops a set of workers together.
type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start starts the workers in order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

type sessionWatcher struct {
	job      service.SessionWatchJob
	interval time.Duration
}

// NewSessionWatcher runs job every interval.
func NewSessionWatcher(job service.SessionWatchJob, interval time.Duration) Worker {
	return &sessionWatcher{job: job, interval: interval}
}

func (s *sessionWatcher) Start(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *sessionWatcher) Stop() {
	s.job.Stop()
}
