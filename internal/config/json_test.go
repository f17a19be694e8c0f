// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRawJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJSON_AllSections(t *testing.T) {
	path := writeRawJSON(t, `{
		"app": {"log_file": "json.log", "loose_role_match": true},
		"storage": {"db": {"dsn": "json.db"}, "files": {"session_file": "json-session.json"}},
		"adapter": {"address": "127.0.0.1:8000", "request_timeout": "5s"},
		"workers": {"session_check_interval": "10s", "cache_ttl": 60000000000, "cache_size": 8}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json.log", cfg.App.LogFile)
	assert.True(t, cfg.App.LooseRoleMatch)
	assert.Equal(t, "json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "json-session.json", cfg.Storage.Files.SessionFile)
	assert.Equal(t, "http://127.0.0.1:8000/api/v1", cfg.Adapter.Address)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Workers.SessionCheckInterval)
	assert.Equal(t, time.Minute, cfg.Workers.CacheTTL)
	assert.Equal(t, 8, cfg.Workers.CacheSize)
}

func TestParseJSON_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("broken json", func(t *testing.T) {
		_, err := parseJSON(writeRawJSON(t, `{"app":`))
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := parseJSON(writeRawJSON(t, `{"adapter": {"request_timeout": "later"}}`))
		assert.Error(t, err)
	})

	t.Run("bad address", func(t *testing.T) {
		_, err := parseJSON(writeRawJSON(t, `{"adapter": {"address": "nowhere"}}`))
		assert.Error(t, err)
	})
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1h30m"`), &d))
	assert.Equal(t, 90*time.Minute, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.Zero(t, d)

	assert.Error(t, json.Unmarshal([]byte(`true`), &d))

	out, err := json.Marshal(Duration(15 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"15s"`, string(out))
}
