// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rbac

import (
	"strings"

	"github.com/MKhiriev/sim-sekolah/models"
)

// MenuOption tunes [VisibleMenu].
type MenuOption func(*menuOptions)

type menuOptions struct {
	loose bool
}

// WithLooseMatch makes an entry visible when the role and an allowed role
// contain one another as substrings. It can over-grant ("guru" matches
// "tamu_guru") and is off by default.
func WithLooseMatch(enabled bool) MenuOption {
	return func(o *menuOptions) {
		o.loose = enabled
	}
}

// VisibleMenu returns the entries of all that the principal's role may see,
// in declared order. The grades entry is retargeted to "my grades" for
// students and parents. The input slice is never modified.
func VisibleMenu(p *models.Principal, all []models.MenuEntry, opts ...MenuOption) []models.MenuEntry {
	var o menuOptions
	for _, opt := range opts {
		opt(&o)
	}

	role := ExtractRole(p)
	if role == models.RoleNone {
		return []models.MenuEntry{}
	}

	visible := make([]models.MenuEntry, 0, len(all))
	for _, entry := range all {
		if !allowed(role, entry.AllowedRoles, o.loose) {
			continue
		}
		visible = append(visible, rewriteEntry(cloneEntry(entry), role))
	}

	return visible
}

func allowed(role models.CanonicalRole, set models.RoleSet, loose bool) bool {
	if set.Contains(role) {
		return true
	}
	if !loose {
		return false
	}

	for _, r := range set {
		if r == models.RoleNone {
			continue
		}
		if strings.Contains(string(r), string(role)) || strings.Contains(string(role), string(r)) {
			return true
		}
	}
	return false
}

func rewriteEntry(e models.MenuEntry, role models.CanonicalRole) models.MenuEntry {
	if e.Path == PathNilai && IsStudentOrParent(role) {
		e.Path = PathNilaiSaya
		e.Label = LabelNilaiSaya
	}
	return e
}

// IsActive reports whether the sidebar entry for path should be highlighted
// at location.
func IsActive(location, path string) bool {
	if path == "" {
		return false
	}
	return location == path || strings.HasPrefix(location, path+"/")
}
