// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/sim-sekolah/internal/logger"
)

// kvRepository stores session keys in the SQLite kv_store table.
type kvRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository returns a [SessionRepository] backed by db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &kvRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *kvRepository) Put(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).Str("func", "kvRepository.Put").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		query, args, err := buildUpsertQuery(key, entries[key])
		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.Err(err).
				Str("func", "kvRepository.Put").
				Str("key", key).
				Msg("failed to upsert session key")
			return fmt.Errorf("%w (key=%s): %w", ErrExecutingStatement, key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		r.logger.Err(err).Str("func", "kvRepository.Put").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := buildGetQuery(key)
	if err != nil {
		return "", err
	}

	var value string
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "kvRepository.Get").
			Str("key", key).
			Msg("failed to read session key")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (r *kvRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := buildDeleteQuery(keys)
	if err != nil {
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "kvRepository.Delete").
			Strs("keys", keys).
			Msg("failed to delete session keys")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
