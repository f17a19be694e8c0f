// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func TestParseToken_ReadsClaimsWithoutKey(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	token, err := ParseToken(raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.Subject != "7" {
		t.Errorf("expected subject '7', got %q", token.Subject)
	}
	if token.Raw != raw {
		t.Error("expected Raw to hold the original token")
	}
	if !token.ExpiresAt.Time.Equal(exp) {
		t.Errorf("expected exp %v, got %v", exp, token.ExpiresAt.Time)
	}
}

func TestParseToken_Opaque(t *testing.T) {
	_, err := ParseToken("opaque-session-token")
	if !errors.Is(err, ErrNotJWT) {
		t.Fatalf("expected ErrNotJWT, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	now := time.Now().Truncate(time.Second)

	tests := []struct {
		name        string
		token       string
		wantExpired bool
	}{
		{"exp in the past", signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}), true},
		{"exp equals now", signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now)}), true},
		{"exp in the future", signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}), false},
		{"no exp claim", signedToken(t, jwt.RegisteredClaims{Subject: "1"}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ParseToken(tt.token)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if got := token.Expired(now); got != tt.wantExpired {
				t.Errorf("expected expired=%v, got %v", tt.wantExpired, got)
			}
		})
	}
}

func TestBearerHeader(t *testing.T) {
	if got := BearerHeader("xyz"); got != "Bearer xyz" {
		t.Errorf("expected %q, got %q", "Bearer xyz", got)
	}
}
