// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_UnmarshalJSON_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind RoleKind
	}{
		{name: "null", input: `null`, wantKind: RoleKindAbsent},
		{name: "string", input: `"Guru"`, wantKind: RoleKindString},
		{name: "object nama_role", input: `{"nama_role":"Admin"}`, wantKind: RoleKindObject},
		{name: "empty object", input: `{}`, wantKind: RoleKindObject},
		{name: "number", input: `42`, wantKind: RoleKindUnknown},
		{name: "array", input: `["admin","guru"]`, wantKind: RoleKindUnknown},
		{name: "bool", input: `true`, wantKind: RoleKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Role
			require.NoError(t, json.Unmarshal([]byte(tt.input), &r))
			assert.Equal(t, tt.wantKind, r.Kind())
		})
	}
}

func TestRole_UnmarshalJSON_ObjectIgnoresNonStringAliases(t *testing.T) {
	var r Role
	require.NoError(t, json.Unmarshal([]byte(`{"nama_role":7,"name":"Siswa"}`), &r))

	obj, ok := r.Object()
	require.True(t, ok)
	assert.Empty(t, obj.NamaRole)
	assert.Equal(t, "Siswa", obj.Name)
}

func TestRole_MarshalJSON_RoundTripKeepsRawBytes(t *testing.T) {
	inputs := []string{
		`"Guru"`,
		`{"id":3,"nama_role":"Wali_Kelas","deskripsi":"x"}`,
		`[1,2]`,
	}

	for _, in := range inputs {
		var r Role
		require.NoError(t, json.Unmarshal([]byte(in), &r))

		out, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, in, string(out))
	}
}

func TestRole_Constructors(t *testing.T) {
	s := StringRole("admin")
	name, ok := s.Name()
	assert.True(t, ok)
	assert.Equal(t, "admin", name)

	o := ObjectRole(RoleObject{Nama: "guru"})
	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nama":"guru"}`, string(out))

	assert.True(t, Role{}.IsZero())
}

func TestPrincipal_UnmarshalJSON(t *testing.T) {
	var p Principal
	err := json.Unmarshal([]byte(`{"id":12,"nama":"Budi","email":"budi@sekolah.id","role":{"nama_role":"Guru"},"kelas":"X"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, OpaqueID("12"), p.ID)
	assert.Equal(t, "Budi", p.DisplayName())
	assert.Equal(t, RoleKindObject, p.Role.Kind())
}

func TestPrincipal_MissingRoleIsAbsent(t *testing.T) {
	var p Principal
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u-1","email":"a@b.c"}`), &p))

	assert.Equal(t, RoleKindAbsent, p.Role.Kind())
	assert.Equal(t, "u-1", p.ID.String())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"role"`)
}

func TestPrincipal_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		p    *Principal
		want string
	}{
		{name: "nil", p: nil, want: "User"},
		{name: "nama", p: &Principal{Nama: "Siti", Name: "x", Email: "y"}, want: "Siti"},
		{name: "name", p: &Principal{Name: "Andi", Email: "y"}, want: "Andi"},
		{name: "email", p: &Principal{Email: "guru@sekolah.id"}, want: "guru@sekolah.id"},
		{name: "blank", p: &Principal{Nama: "  "}, want: "User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.DisplayName())
		})
	}
}

func TestOpaqueID_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(OpaqueID("15"))
	require.NoError(t, err)
	assert.Equal(t, `15`, string(out))

	out, err = json.Marshal(OpaqueID("a-1"))
	require.NoError(t, err)
	assert.Equal(t, `"a-1"`, string(out))
}

func TestRoleSet_Contains(t *testing.T) {
	set := NewRoleSet(RoleAdmin, RoleGuru)

	assert.True(t, set.Contains(RoleGuru))
	assert.False(t, set.Contains(RoleSiswa))
	assert.False(t, set.Contains(RoleNone))
	assert.True(t, RoleSet(nil).Empty())
}
