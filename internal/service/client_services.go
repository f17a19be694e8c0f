// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/sim-sekolah/internal/adapter"
	"github.com/MKhiriev/sim-sekolah/internal/config"
	"github.com/MKhiriev/sim-sekolah/internal/logger"
	"github.com/MKhiriev/sim-sekolah/internal/store"
	"github.com/MKhiriev/sim-sekolah/internal/validators"
	"github.com/MKhiriev/sim-sekolah/models"
)

type ClientServices struct {
	SessionService  ClientSessionService
	AcademicService ClientAcademicService
	SessionWatchJob SessionWatchJob
	AppInfoService  AppInfoService
}

// NewClientServices wires the services together: a 401 from any
// authenticated call expires the session, and the end of a session clears
// the reference cache.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.ClientWorkers, buildInfo models.AppBuildInfo, logger *logger.Logger) *ClientServices {
	validator := validators.NewStructValidator()

	sessionSvc := NewClientSessionService(storages.SessionRepository, serverAdapter, validator, logger)
	academicSvc := NewClientAcademicService(serverAdapter, validator, cfg.CacheSize, cfg.CacheTTL, logger)

	serverAdapter.SetUnauthorizedHandler(func() {
		sessionSvc.Expire(context.Background())
	})
	sessionSvc.OnSessionEnd(func(SessionEndReason) {
		academicSvc.ClearCache()
	})

	return &ClientServices{
		SessionService:  sessionSvc,
		AcademicService: academicSvc,
		SessionWatchJob: NewSessionWatchJob(sessionSvc, logger),
		AppInfoService:  NewAppInfoService(buildInfo, logger),
	}
}
