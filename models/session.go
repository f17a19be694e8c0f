// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Persisted session keys.
const (
	SessionKeyToken = "token"
	SessionKeyUser  = "user"
)

// Session pairs a bearer token with the principal it was issued for.
type Session struct {
	// Token is the opaque bearer token.
	Token string
	// Principal is the decoded user record.
	Principal *Principal
	// RawUser is the user record exactly as received from the server.
	RawUser json.RawMessage
}

// Valid reports whether both halves of the session are present.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.Principal != nil
}
