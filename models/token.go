// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a bearer token as seen by the client.
//
// The client never verifies the signature (it does not hold the key); the
// claims are only inspected to learn when the session will expire.
type Token struct {
	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// Raw is the compact token string as stored in the session.
	Raw string `json:"-"`
}

// ExpiresAtTime returns the "exp" claim and whether it was present.
func (t Token) ExpiresAtTime() (time.Time, bool) {
	if t.ExpiresAt == nil {
		return time.Time{}, false
	}
	return t.ExpiresAt.Time, true
}

// Expired reports whether the token carries an "exp" claim in the past.
// Tokens without the claim never expire on the client side.
func (t Token) Expired(now time.Time) bool {
	exp, ok := t.ExpiresAtTime()
	return ok && !now.Before(exp)
}
