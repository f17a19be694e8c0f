// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

var (
	ErrWrongPassword  = errors.New("wrong email or password")
	ErrTokenIsExpired = errors.New("token is expired or invalid")
	ErrTokenMissing   = errors.New("token is missing")
	ErrAccessDenied   = errors.New("access denied")

	ErrValidationFailed = errors.New("validation failed")
	ErrEmailTaken       = errors.New("email already in use")
	ErrScheduleClash    = errors.New("schedule clashes with an existing one")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrSemesterRequired = errors.New("semester is required")
	ErrNoChildren       = errors.New("no children registered")
	ErrNotFound         = errors.New("resource not found")

	ErrServerUnavailable = errors.New("server unavailable")
	ErrMalformedResponse = errors.New("malformed server response")

	ErrNotAuthenticated = errors.New("not authenticated")
)

// AuthErrorKind classifies a failed login.
type AuthErrorKind int

const (
	// AuthErrTransport covers network failures and non-2xx responses.
	AuthErrTransport AuthErrorKind = iota
	// AuthErrMalformedResponse means the response lacked a token or user.
	AuthErrMalformedResponse
	// AuthErrInvalidInput means the credentials were rejected before any
	// request was made.
	AuthErrInvalidInput
	// AuthErrPersist means the session could not be written.
	AuthErrPersist
)

func (k AuthErrorKind) String() string {
	switch k {
	case AuthErrTransport:
		return "transport"
	case AuthErrMalformedResponse:
		return "malformed_response"
	case AuthErrInvalidInput:
		return "invalid_input"
	case AuthErrPersist:
		return "persist"
	default:
		return fmt.Sprintf("AuthErrorKind(%d)", int(k))
	}
}

// AuthError is returned by every failed login. Message is ready to be shown
// under the login form.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("login failed (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("login failed (%s): %s: %v", e.Kind, e.Message, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
