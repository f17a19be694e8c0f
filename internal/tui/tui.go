// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/sim-sekolah/internal/config"
	"github.com/MKhiriev/sim-sekolah/internal/logger"
	"github.com/MKhiriev/sim-sekolah/internal/rbac"
	"github.com/MKhiriev/sim-sekolah/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services *service.ClientServices
	cfg      config.ClientApp
	logger   *logger.Logger
}

func New(services *service.ClientServices, cfg config.ClientApp, log *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("tui: nil services")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TUI{services: services, cfg: cfg, logger: log}, nil
}

// Run shows the application until the user quits. It returns [ErrUserQuit]
// when the user closed the program with q or Ctrl+C.
func (t *TUI) Run(ctx context.Context) error {
	root := NewRootModel(ctx,
		t.services.SessionService,
		t.services.AcademicService,
		t.services.AppInfoService.BuildInfo(ctx),
		rbac.WithLooseMatch(t.cfg.LooseRoleMatch),
	)

	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))
	t.services.SessionService.OnSessionEnd(func(reason service.SessionEndReason) {
		p.Send(sessionEndedMsg{reason: reason})
	})

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		t.logger.Info().Msg("user quit")
		return ErrUserQuit
	}
	return nil
}
