// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the REST transport to the SIM Sekolah API.
//
// [ServerAdapter] decouples the service layer from HTTP. Non-2xx responses
// are mapped to *[ServerError] values that unwrap to the sentinels in
// errors.go, so callers use [errors.Is] (e.g. [ErrUnauthorized] for 401) and
// [ServerMessage] to show the server's own message.
package adapter

import (
	"context"
	"net/url"

	"github.com/MKhiriev/sim-sekolah/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// Request describes one authenticated API call.
type Request struct {
	// Method is the HTTP method, e.g. http.MethodGet.
	Method string
	// Path is relative to the API base, e.g. "/siswa/3".
	Path string
	// Query holds optional query parameters.
	Query url.Values
	// Body is JSON-encoded when non-nil.
	Body any
}

// ServerAdapter defines communication with the SIM Sekolah API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to subsequent authenticated
	// requests. An empty token clears it.
	SetToken(token string)

	// Token returns the bearer token currently held, or "".
	Token() string

	// SetUnauthorizedHandler registers fn to run when an authenticated call
	// gets 401. Calls to the login endpoint never trigger it.
	SetUnauthorizedHandler(fn func())

	// Login posts the credentials to /auth/login and returns the raw
	// response body. The body shape varies between backends, so decoding
	// is left to the caller.
	Login(ctx context.Context, req models.LoginRequest) ([]byte, error)

	// Me fetches the current user record from /auth/me and returns the raw
	// body.
	Me(ctx context.Context) ([]byte, error)

	// Do performs an authenticated call and returns the raw response body.
	Do(ctx context.Context, req Request) ([]byte, error)
}
