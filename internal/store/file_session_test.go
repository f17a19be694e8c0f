// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/sim-sekolah/internal/config"
	"github.com/MKhiriev/sim-sekolah/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileRepo(t *testing.T) (SessionRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "session.json")
	return NewFileSessionRepository(path, logger.Nop()), path
}

func TestFileSession_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestFileRepo(t)

	_, err := repo.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, repo.Put(ctx, map[string]string{"token": "abc", "user": `{"id":1}`}))

	token, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, repo.Delete(ctx, "token"))
	_, err = repo.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	user, err := repo.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, user)
}

// TestFileSession_SurvivesRestart: новый экземпляр видит данные предыдущего.
func TestFileSession_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestFileRepo(t)
	require.NoError(t, repo.Put(ctx, map[string]string{"token": "abc"}))

	reopened := NewFileSessionRepository(path, logger.Nop())
	token, err := reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestFileSession_ObservesOutOfBandRemoval(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestFileRepo(t)
	require.NoError(t, repo.Put(ctx, map[string]string{"token": "abc"}))

	require.NoError(t, os.Remove(path))

	_, err := repo.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileSession_CorruptFile(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestFileRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := repo.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrReadingSessionFile)

	// Delete заменяет нечитаемый файл
	require.NoError(t, repo.Delete(ctx, "token", "user"))
	_, err = repo.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

// TestFileSession_PutReplacesCorruptFile: новый вход не блокируется битым файлом.
func TestFileSession_PutReplacesCorruptFile(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestFileRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("\x00\x01truncated{"), 0o600))

	require.NoError(t, repo.Put(ctx, map[string]string{"token": "abc"}))

	token, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestFileSession_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestFileRepo(t)
	require.NoError(t, repo.Put(ctx, map[string]string{"token": "a"}))
	require.NoError(t, repo.Put(ctx, map[string]string{"token": "b"}))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "session.json", entries[0].Name())
}

func TestNewClientStorages_FileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storages, err := NewClientStorages(context.Background(), config.ClientStorage{
		Files: config.ClientFiles{SessionFile: path},
	}, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	require.NotNil(t, storages.SessionRepository)
	require.NoError(t, storages.SessionRepository.Put(context.Background(), map[string]string{"token": "t"}))
	assert.FileExists(t, path)
}
