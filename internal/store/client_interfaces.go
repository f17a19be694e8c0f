// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository is a durable string key/value store holding the
// session keys ("token" and "user").
type SessionRepository interface {
	// Put writes all entries atomically: either every key is stored or
	// none is.
	Put(ctx context.Context, entries map[string]string) error
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
