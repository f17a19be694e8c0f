// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/sim-sekolah/internal/logger"
)

// fileSessionRepository keeps session keys in a single JSON object on disk.
// Every call re-reads the file, so a file removed or edited by another
// process is observed on the next access.
type fileSessionRepository struct {
	path   string
	mu     sync.Mutex
	logger *logger.Logger
}

// NewFileSessionRepository returns a [SessionRepository] persisting to path.
// The file is created on first write with mode 0600.
func NewFileSessionRepository(path string, logger *logger.Logger) SessionRepository {
	return &fileSessionRepository{
		path:   path,
		logger: logger,
	}
}

func (f *fileSessionRepository) Put(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.load()
	if err != nil {
		// a fresh login must not be blocked by a corrupt file
		f.logger.Err(err).Str("func", "fileSessionRepository.Put").Msg("replacing unreadable session file")
		state = map[string]string{}
	}
	for k, v := range entries {
		state[k] = v
	}

	return f.persist(state)
}

func (f *fileSessionRepository) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.load()
	if err != nil {
		return "", err
	}

	value, ok := state[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (f *fileSessionRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.load()
	if err != nil {
		// an unreadable file is replaced by one without the keys
		f.logger.Err(err).Str("func", "fileSessionRepository.Delete").Msg("discarding unreadable session file")
		state = map[string]string{}
	}

	changed := false
	for _, k := range keys {
		if _, ok := state[k]; ok {
			delete(state, k)
			changed = true
		}
	}
	if !changed && err == nil {
		return nil
	}

	return f.persist(state)
}

func (f *fileSessionRepository) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingSessionFile, err)
	}

	state := map[string]string{}
	if len(data) == 0 {
		return state, nil
	}
	if err = json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingSessionFile, err)
	}

	return state, nil
}

// persist writes state to a temp file in the same directory and renames it
// over the session file.
func (f *fileSessionRepository) persist(state map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingSessionFile, err)
	}

	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWritingSessionFile, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWritingSessionFile, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err = tmp.Chmod(0o600); err == nil {
		_, err = tmp.Write(payload)
	}
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		f.logger.Err(err).Str("func", "fileSessionRepository.persist").Msg("failed to write temp session file")
		return fmt.Errorf("%w: %w", ErrWritingSessionFile, err)
	}

	if err = os.Rename(tmpName, f.path); err != nil {
		f.logger.Err(err).Str("func", "fileSessionRepository.persist").Msg("failed to replace session file")
		return fmt.Errorf("%w: %w", ErrWritingSessionFile, err)
	}

	return nil
}
