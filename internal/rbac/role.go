// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package rbac holds the role-based navigation rules of the client: role
// extraction, the per-screen route guard, the sidebar menu filter and the
// dashboard selector.
//
// Every function here is total. Unexpected input degrades to a safe default
// (empty role, denied access, empty menu, generic dashboard) instead of
// returning an error.
package rbac

import (
	"strings"

	"github.com/MKhiriev/sim-sekolah/models"
)

// ExtractRole normalises the role of p into a [models.CanonicalRole].
//
// A string role is lowercased and trimmed. For an object role the first
// non-empty alias among nama_role, name and nama is used. A nil principal,
// an absent role or any other shape yields [models.RoleNone].
func ExtractRole(p *models.Principal) models.CanonicalRole {
	raw := rawRoleName(p)
	return models.CanonicalRole(strings.ToLower(strings.TrimSpace(raw)))
}

// RoleLabel returns the role name as received, trimmed, for display in the
// header. It returns "-" when there is no role.
func RoleLabel(p *models.Principal) string {
	raw := strings.TrimSpace(rawRoleName(p))
	if raw == "" {
		return "-"
	}
	return raw
}

func rawRoleName(p *models.Principal) string {
	if p == nil {
		return ""
	}

	switch p.Role.Kind() {
	case models.RoleKindString:
		name, _ := p.Role.Name()
		return name
	case models.RoleKindObject:
		obj, _ := p.Role.Object()
		for _, alias := range obj.Aliases() {
			if strings.TrimSpace(alias) != "" {
				return alias
			}
		}
	}

	return ""
}

// IsStudentOrParent reports whether role sees the "my grades" screen
// instead of grade entry.
func IsStudentOrParent(role models.CanonicalRole) bool {
	switch role {
	case models.RoleSiswa, models.RoleOrangTua, models.RoleOrangTuaSpaced:
		return true
	default:
		return false
	}
}
