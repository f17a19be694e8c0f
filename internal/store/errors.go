// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by Get when the key is not stored.
	ErrKeyNotFound = errors.New("key not found")
)

// Low-level storage errors. These are wrapped together with the driver
// error.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when commit fails. The transaction
	// is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrReadingSessionFile is returned when the JSON session file exists but
	// cannot be read or decoded.
	ErrReadingSessionFile = errors.New("failed to read session file")

	// ErrWritingSessionFile is returned when the JSON session file cannot be
	// replaced.
	ErrWritingSessionFile = errors.New("failed to write session file")
)
