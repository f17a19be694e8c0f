// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the SIM
// Sekolah client. It is populated by merging values from environment
// variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds presentation and logging settings.
	App App `envPrefix:"APP_"`

	// Storage holds the settings of the durable session store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the settings of the REST API transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the settings of background jobs and caches.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// LogFile is where JSON logs are appended. The terminal belongs to the
	// TUI, so logs never go to stdout unless the file cannot be opened.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// LooseRoleMatch enables substring role matching in the sidebar menu.
	// Env: APP_LOOSE_ROLE_MATCH
	LooseRoleMatch bool `env:"LOOSE_ROLE_MATCH"`
}

// Storage groups the session store backends. DB wins when both are set.
type Storage struct {
	// DB holds the SQLite session database settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the JSON session file settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds the SQLite connection settings.
type DB struct {
	// DSN is the path of the SQLite database file, e.g. "sim-sekolah.db".
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Files holds the JSON session file settings.
type Files struct {
	// SessionFile is the path of the JSON session file.
	// Env: STORAGE_FILES_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`
}

// Adapter holds the REST API transport settings.
type Adapter struct {
	// Address is the API base URL, e.g. "http://localhost:8080/api/v1".
	// A bare "host:port" gets the http scheme and the /api/v1 prefix.
	// Env: ADAPTER_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background job settings.
type Workers struct {
	// SessionCheckInterval is how often the session watcher checks the
	// persisted token.
	// Env: WORKERS_SESSION_CHECK_INTERVAL
	SessionCheckInterval time.Duration `env:"SESSION_CHECK_INTERVAL"`

	// CacheTTL is how long reference lists (classes, subjects, years) stay
	// cached.
	// Env: WORKERS_CACHE_TTL
	CacheTTL time.Duration `env:"CACHE_TTL"`

	// CacheSize is the maximum number of cached reference lists.
	// Env: WORKERS_CACHE_SIZE
	CacheSize int `env:"CACHE_SIZE"`
}

// defaults returns the lowest-priority configuration layer.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogFile: "sim-sekolah.log",
		},
		Storage: Storage{
			Files: Files{SessionFile: "sim-sekolah-session.json"},
		},
		Adapter: Adapter{
			Address:        "http://localhost:8080/api/v1",
			RequestTimeout: 15 * time.Second,
		},
		Workers: Workers{
			SessionCheckInterval: 30 * time.Second,
			CacheTTL:             5 * time.Minute,
			CacheSize:            64,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all sources
// in the following priority order (later sources override non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
