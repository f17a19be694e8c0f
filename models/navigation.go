// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MenuEntry is one item of the navigation sidebar.
type MenuEntry struct {
	// Label is the text shown in the sidebar.
	Label string
	// Path is the screen the entry navigates to.
	Path string
	// Icon is a short glyph rendered before the label.
	Icon string
	// AllowedRoles lists the canonical roles that see the entry.
	AllowedRoles RoleSet
}

// Route describes a screen reachable by navigation.
type Route struct {
	// Path identifies the screen, e.g. "/siswa".
	Path string
	// Title is the heading shown on the screen.
	Title string
	// RequiredRoles gates the screen. nil allows any authenticated principal.
	RequiredRoles RoleSet
	// Public routes are reachable without a session.
	Public bool
}

// DashboardVariant identifies one of the role-specific dashboards.
type DashboardVariant int

const (
	DashboardGeneric DashboardVariant = iota
	DashboardAdmin
	DashboardHomeroomTeacher
	DashboardTeacher
	DashboardPrincipal
	DashboardStudent
	DashboardParent
)

func (v DashboardVariant) String() string {
	switch v {
	case DashboardAdmin:
		return "Admin"
	case DashboardHomeroomTeacher:
		return "HomeroomTeacher"
	case DashboardTeacher:
		return "Teacher"
	case DashboardPrincipal:
		return "Principal"
	case DashboardStudent:
		return "Student"
	case DashboardParent:
		return "Parent"
	default:
		return "Generic"
	}
}
