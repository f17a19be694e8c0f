// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/sim-sekolah/internal/rbac"
	"github.com/MKhiriev/sim-sekolah/models"
)

// sidebarModel is the navigation menu of the signed-in layout. Entries are
// recomputed from the session on every navigation.
type sidebarModel struct {
	entries []models.MenuEntry
	idx     int
}

func newSidebar(p *models.Principal, all []models.MenuEntry, opts ...rbac.MenuOption) sidebarModel {
	return sidebarModel{entries: rbac.VisibleMenu(p, all, opts...)}
}

// syncTo moves the cursor to the entry that is active at location.
func (m *sidebarModel) syncTo(location string) {
	for i, e := range m.entries {
		if rbac.IsActive(location, e.Path) {
			m.idx = i
			return
		}
	}
}

func (m *sidebarModel) up() {
	if m.idx > 0 {
		m.idx--
	}
}

func (m *sidebarModel) down() {
	if m.idx < len(m.entries)-1 {
		m.idx++
	}
}

func (m sidebarModel) selected() (models.MenuEntry, bool) {
	if m.idx < 0 || m.idx >= len(m.entries) {
		return models.MenuEntry{}, false
	}
	return m.entries[m.idx], true
}

func (m sidebarModel) View(location string, focused bool) string {
	var b strings.Builder
	for i, e := range m.entries {
		line := e.Icon + " " + e.Label
		cursor := "  "
		if focused && i == m.idx {
			cursor = "> "
		}
		if rbac.IsActive(location, e.Path) {
			line = activeEntryStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.entries) == 0 {
		b.WriteString("  -\n")
	}
	return sidebarStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderHeader greets the user with their display name and role.
func renderHeader(p *models.Principal, title string) string {
	greeting := "Halo, " + p.DisplayName() + " · " + rbac.RoleLabel(p)
	return headerStyle.Render(greeting + "   " + title)
}
