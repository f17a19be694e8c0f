// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"strings"
)

// Sentinel errors mapped from HTTP status codes by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	// ErrUnsuccessful is returned for a 2xx envelope with "success": false.
	ErrUnsuccessful = errors.New("request was not successful")
)

// ServerError is a non-2xx response. It unwraps to the sentinel matching the
// status code, so callers use errors.Is for classification and
// [ServerMessage] for display.
type ServerError struct {
	Status  int
	Message string
	kind    error
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.Message
}

func (e *ServerError) Unwrap() error {
	return e.kind
}

// ServerMessage returns the server-provided "message" carried by err, or ""
// when err holds none.
func ServerMessage(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return strings.TrimSpace(se.Message)
	}
	return ""
}
