// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Principal is the authenticated user record as returned by the
// authentication endpoint and persisted verbatim under the "user" key.
//
// Only the fields the client needs for display and authorization are
// decoded; everything else in the record is ignored.
type Principal struct {
	// ID is the server-side identifier. It is opaque to the client.
	ID OpaqueID `json:"id"`

	// Nama is the Indonesian display-name field used by the backend.
	Nama string `json:"nama,omitempty"`

	// Name is an alternative display-name field.
	Name string `json:"name,omitempty"`

	// Email is the login e-mail, used as a display fallback.
	Email string `json:"email,omitempty"`

	// Role is either a bare role name or a role object.
	// See [Role] for the accepted shapes.
	Role Role `json:"role,omitzero"`
}

// DisplayName returns the first non-empty of Nama, Name and Email,
// falling back to "User".
func (p *Principal) DisplayName() string {
	if p == nil {
		return "User"
	}
	for _, v := range []string{p.Nama, p.Name, p.Email} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return "User"
}

// OpaqueID holds an identifier that the server may send either as a JSON
// number or as a JSON string. The textual form is kept as-is.
type OpaqueID string

// UnmarshalJSON accepts a JSON number, string or null.
func (id *OpaqueID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = OpaqueID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = OpaqueID(n.String())
	return nil
}

// MarshalJSON writes numeric identifiers back as numbers so that a
// round-trip keeps the original shape.
func (id OpaqueID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the textual identifier.
func (id OpaqueID) String() string {
	return string(id)
}
