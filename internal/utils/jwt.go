// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned when a bearer token is not a parseable JWT. The
// server is free to issue opaque tokens, so callers treat it as "expiry
// unknown" rather than as a broken session.
var ErrNotJWT = errors.New("token is not a JWT")

// ParseToken decodes the claims of tokenString without verifying the
// signature. The client does not hold the signing key.
func ParseToken(tokenString string) (models.Token, error) {
	claims := models.Token{Raw: tokenString}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims)
	if err != nil {
		return models.Token{Raw: tokenString}, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}
	return claims, nil
}

// BearerHeader formats token as an Authorization header value.
func BearerHeader(token string) string {
	return "Bearer " + token
}
