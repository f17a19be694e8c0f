// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sim-sekolah/internal/config"
	"github.com/MKhiriev/sim-sekolah/internal/logger"
)

// ClientStorages groups all client-side repositories.
type ClientStorages struct {
	// SessionRepository persists the session token and user record.
	SessionRepository SessionRepository

	db *DB
}

// NewClientStorages initialises the client storage layer.
//
// When cfg.DB.DSN is set, the session lives in SQLite: the database file is
// opened (created if missing) and migrated. Otherwise the JSON file at
// cfg.Files.SessionFile is used.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("func", "NewClientStorages").Msg("creating new storages...")

	if cfg.DB.DSN == "" {
		logger.Debug().
			Str("func", "NewClientStorages").
			Str("path", cfg.Files.SessionFile).
			Msg("using JSON session file")
		return &ClientStorages{
			SessionRepository: NewFileSessionRepository(cfg.Files.SessionFile, logger),
		}, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewSessionRepository(db, logger),
		db:                db,
	}, nil
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
