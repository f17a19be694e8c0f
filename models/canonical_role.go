// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CanonicalRole is the normalised role token: lowercase and trimmed.
// It is always derived from a [Principal] and never stored.
//
// The empty value means "no role".
type CanonicalRole string

// Role vocabulary. Multiword roles appear with both an underscore and a
// space because both spellings occur in user records.
const (
	RoleAdmin               CanonicalRole = "admin"
	RoleGuru                CanonicalRole = "guru"
	RoleWaliKelas           CanonicalRole = "wali_kelas"
	RoleWaliKelasSpaced     CanonicalRole = "wali kelas"
	RoleKepalaSekolah       CanonicalRole = "kepala_sekolah"
	RoleKepalaSekolahSpaced CanonicalRole = "kepala sekolah"
	RoleSiswa               CanonicalRole = "siswa"
	RoleOrangTua            CanonicalRole = "orang_tua"
	RoleOrangTuaSpaced      CanonicalRole = "orang tua"
)

// RoleNone is returned when no role can be extracted.
const RoleNone CanonicalRole = ""

// RoleSet is an ordered set of roles allowed to see a screen or menu entry.
// A nil or empty set means "any authenticated principal" for routes.
type RoleSet []CanonicalRole

// NewRoleSet returns a RoleSet containing roles.
func NewRoleSet(roles ...CanonicalRole) RoleSet {
	return RoleSet(roles)
}

// Contains reports whether role is a member. RoleNone is never a member.
func (s RoleSet) Contains(role CanonicalRole) bool {
	if role == RoleNone {
		return false
	}
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no members.
func (s RoleSet) Empty() bool {
	return len(s) == 0
}
