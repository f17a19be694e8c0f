// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAPIAddress_Set tests the Set method of APIAddress
func TestAPIAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    string
	}{
		{name: "localhost with port", input: "localhost:8080", expected: "http://localhost:8080/api/v1"},
		{name: "IP with port", input: "127.0.0.1:9000", expected: "http://127.0.0.1:9000/api/v1"},
		{name: "http URL", input: "http://sekolah.local/api/v1", expected: "http://sekolah.local/api/v1"},
		{name: "https URL trailing slash", input: "https://sim.example.com/api/v1/", expected: "https://sim.example.com/api/v1"},
		{name: "empty", input: "", expectError: true},
		{name: "no port", input: "localhost", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "non-numeric port", input: "localhost:http", expectError: true},
		{name: "hostname without scheme", input: "example.com:8080", expectError: true},
		{name: "ftp scheme", input: "ftp://example.com", expectError: true},
		{name: "scheme without host", input: "http://", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a APIAddress
			err := a.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a.String())
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "localhost:9090",
		"-request-timeout", "20s",
		"-d", "session.db",
		"-f", "session.json",
		"-log-file", "client.log",
		"-loose-role-match",
		"-session-check-interval", "1m",
		"-cache-ttl", "10m",
		"-cache-size", "32",
		"-c", "config.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090/api/v1", cfg.Adapter.Address)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "session.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "session.json", cfg.Storage.Files.SessionFile)
	assert.Equal(t, "client.log", cfg.App.LogFile)
	assert.True(t, cfg.App.LooseRoleMatch)
	assert.Equal(t, time.Minute, cfg.Workers.SessionCheckInterval)
	assert.Equal(t, 10*time.Minute, cfg.Workers.CacheTTL)
	assert.Equal(t, 32, cfg.Workers.CacheSize)
	assert.Equal(t, "config.json", cfg.JSONFilePath)
}

func TestParseFlags_NoArgs(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", "alt.json"})
	require.NoError(t, err)
	assert.Equal(t, "alt.json", cfg.JSONFilePath)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad address", args: []string{"-a", "nowhere"}},
		{name: "bad duration", args: []string{"-request-timeout", "soon"}},
		{name: "unknown flag", args: []string{"-unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
