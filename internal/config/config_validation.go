// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the client configuration before startup.
//
// An in-memory SQLite DSN is rejected because the session must survive
// restarts.
func (cfg *ClientConfig) validate() error {
	dsn := strings.TrimSpace(cfg.Storage.DB.DSN)
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return ErrInvalidStorageConfigs
	}
	if dsn == "" && strings.TrimSpace(cfg.Storage.Files.SessionFile) == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SessionCheckInterval <= 0 || cfg.Workers.CacheTTL <= 0 || cfg.Workers.CacheSize <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
