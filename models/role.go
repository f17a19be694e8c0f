// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// RoleKind tells which shape a [Role] was received in.
type RoleKind int

const (
	// RoleKindAbsent means the record carried no role at all (or null).
	RoleKindAbsent RoleKind = iota
	// RoleKindString means the role is a bare name, e.g. "guru".
	RoleKindString
	// RoleKindObject means the role is an object with one of the alias fields.
	RoleKindObject
	// RoleKindUnknown covers any other JSON shape (numbers, arrays, booleans).
	RoleKindUnknown
)

// RoleObject is the object form of a role. Backends disagree on the field
// carrying the name, so all known aliases are kept.
type RoleObject struct {
	NamaRole string `json:"nama_role,omitempty"`
	Name     string `json:"name,omitempty"`
	Nama     string `json:"nama,omitempty"`
}

// Aliases returns the alias values in lookup order: nama_role, name, nama.
func (o RoleObject) Aliases() []string {
	return []string{o.NamaRole, o.Name, o.Nama}
}

// Role is a tagged union over the role representations found in user
// records. Decoding never fails on an unexpected shape: it yields
// RoleKindUnknown and keeps the raw bytes so that the record re-encodes
// unchanged.
type Role struct {
	kind   RoleKind
	name   string
	object RoleObject
	raw    json.RawMessage
}

// StringRole builds a role received as a bare name.
func StringRole(name string) Role {
	return Role{kind: RoleKindString, name: name}
}

// ObjectRole builds a role received as an object.
func ObjectRole(obj RoleObject) Role {
	return Role{kind: RoleKindObject, object: obj}
}

// Kind reports the received shape.
func (r Role) Kind() RoleKind {
	return r.kind
}

// Name returns the bare name of a RoleKindString role.
func (r Role) Name() (string, bool) {
	return r.name, r.kind == RoleKindString
}

// Object returns the object of a RoleKindObject role.
func (r Role) Object() (RoleObject, bool) {
	return r.object, r.kind == RoleKindObject
}

// IsZero reports whether the role is absent.
func (r Role) IsZero() bool {
	return r.kind == RoleKindAbsent
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Role) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*r = Role{}

	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := make(json.RawMessage, len(b))
	copy(raw, b)

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Role{kind: RoleKindString, name: s, raw: raw}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(b, &fields); err != nil {
			return err
		}
		*r = Role{
			kind: RoleKindObject,
			object: RoleObject{
				NamaRole: stringField(fields, "nama_role"),
				Name:     stringField(fields, "name"),
				Nama:     stringField(fields, "nama"),
			},
			raw: raw,
		}
	default:
		*r = Role{kind: RoleKindUnknown, raw: raw}
	}

	return nil
}

// MarshalJSON implements json.Marshaler. Decoded roles are written back
// byte for byte.
func (r Role) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}

	switch r.kind {
	case RoleKindString:
		return json.Marshal(r.name)
	case RoleKindObject:
		return json.Marshal(r.object)
	default:
		return []byte("null"), nil
	}
}

// stringField returns fields[key] when it is a JSON string. Non-string
// values are ignored.
func stringField(fields map[string]json.RawMessage, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}
