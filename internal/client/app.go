// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/sim-sekolah/internal/config"
	"github.com/MKhiriev/sim-sekolah/internal/logger"
	"github.com/MKhiriev/sim-sekolah/internal/service"
	"github.com/MKhiriev/sim-sekolah/internal/tui"
	"github.com/MKhiriev/sim-sekolah/internal/workers"
)

// UI is the interactive front end run by [App].
type UI interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	ui       UI
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, cfg config.ClientWorkers, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client: services and ui are required")
	}

	return &App{
		services: services,
		ui:       ui,
		workers:  workers.NewWorkers(workers.NewSessionWatcher(services.SessionWatchJob, cfg.SessionCheckInterval)),
		logger:   log,
	}, nil
}

// Run starts the background workers and blocks in the UI. Quitting the UI
// is a normal exit.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.workers.Start(ctx)
	defer a.workers.Stop()

	a.logger.Info().Msg("client started")
	err := a.ui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("client stopped by user")
		return nil
	}
	return err
}
