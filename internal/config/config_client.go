// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds presentation and logging settings.
type ClientApp struct {
	// LogFile is the path logs are appended to.
	LogFile string
	// LooseRoleMatch enables substring role matching in the sidebar menu.
	LooseRoleMatch bool
}

// ClientAdapter holds the REST transport settings.
type ClientAdapter struct {
	// BaseURL is the normalised API base URL.
	BaseURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	// DSN is the SQLite database path. Empty selects the JSON file store.
	DSN string
}

// ClientFiles contains the JSON file store settings.
type ClientFiles struct {
	// SessionFile is the path of the JSON session file.
	SessionFile string
}

// ClientStorage groups session store settings.
type ClientStorage struct {
	DB    ClientDB
	Files ClientFiles
}

// ClientWorkers contains background job and cache settings.
type ClientWorkers struct {
	// SessionCheckInterval defines how often the session watcher runs.
	SessionCheckInterval time.Duration
	// CacheTTL is the lifetime of cached reference lists.
	CacheTTL time.Duration
	// CacheSize bounds the number of cached reference lists.
	CacheSize int
}

// ClientConfig is the client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig loads the merged configuration, maps it to the client
// view and validates it.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			LogFile:        cfg.App.LogFile,
			LooseRoleMatch: cfg.App.LooseRoleMatch,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.Address,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB:    ClientDB{DSN: cfg.Storage.DB.DSN},
			Files: ClientFiles{SessionFile: cfg.Storage.Files.SessionFile},
		},
		Workers: ClientWorkers{
			SessionCheckInterval: cfg.Workers.SessionCheckInterval,
			CacheTTL:             cfg.Workers.CacheTTL,
			CacheSize:            cfg.Workers.CacheSize,
		},
	}
}
