// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// APIResponse is the envelope every REST endpoint wraps its payload in.
type APIResponse[T any] struct {
	// Success is false on business errors even when the HTTP status is 2xx.
	Success bool `json:"success"`
	// Message is a human-readable status in Indonesian.
	Message string `json:"message,omitempty"`
	// Data carries the payload.
	Data T `json:"data"`
	// Errors carries field-level validation details, if any.
	Errors json.RawMessage `json:"errors,omitempty"`
	// Pagination is set by list endpoints only.
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes one page of a list endpoint.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Page is a list of items together with its pagination block.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// ListQuery holds the common list parameters.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	// Filters are passed as extra query parameters (e.g. kelas_id).
	Filters map[string]string
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
