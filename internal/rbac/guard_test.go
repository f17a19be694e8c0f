// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rbac

import (
	"context"
	"testing"

	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/stretchr/testify/assert"
)

// stubSession — простая реализация Authenticator для тестов.
type stubSession struct {
	authenticated bool
	principal     *models.Principal
	calls         int
}

func (s *stubSession) IsAuthenticated(context.Context) bool {
	s.calls++
	return s.authenticated
}

func (s *stubSession) Principal() *models.Principal {
	return s.principal
}

func TestCanEnter_Unauthenticated(t *testing.T) {
	ctx := context.Background()
	s := &stubSession{principal: principalWithRole("admin")}

	assert.False(t, CanEnter(ctx, s, nil))
	assert.False(t, CanEnter(ctx, s, models.NewRoleSet(models.RoleAdmin)))
	assert.False(t, CanEnter(ctx, nil, nil))
}

func TestCanEnter_EmptyRequiredAllowsAnyAuthenticated(t *testing.T) {
	ctx := context.Background()
	s := &stubSession{authenticated: true, principal: &models.Principal{}}

	assert.True(t, CanEnter(ctx, s, nil))
	assert.True(t, CanEnter(ctx, s, models.RoleSet{}))
}

func TestCanEnter_EveryVocabularyRole(t *testing.T) {
	ctx := context.Background()

	for _, role := range vocabulary {
		t.Run(string(role), func(t *testing.T) {
			s := &stubSession{authenticated: true, principal: principalWithRole(string(role))}

			assert.True(t, CanEnter(ctx, s, models.NewRoleSet(role)))

			var others models.RoleSet
			for _, other := range vocabulary {
				if other != role {
					others = append(others, other)
				}
			}
			assert.False(t, CanEnter(ctx, s, others))
		})
	}
}

func TestGuard_Decide(t *testing.T) {
	ctx := context.Background()
	g := NewGuard(nil)

	tests := []struct {
		name         string
		session      *stubSession
		path         string
		wantAllowed  bool
		wantRedirect string
	}{
		{
			name:         "anonymous to gated screen",
			session:      &stubSession{},
			path:         PathSiswa,
			wantRedirect: PathLogin,
		},
		{
			name:        "anonymous to login",
			session:     &stubSession{},
			path:        PathLogin,
			wantAllowed: true,
		},
		{
			name:         "authenticated to login",
			session:      &stubSession{authenticated: true, principal: principalWithRole("guru")},
			path:         PathLogin,
			wantRedirect: PathDashboard,
		},
		{
			name:        "teacher to grade entry",
			session:     &stubSession{authenticated: true, principal: principalWithRole("guru")},
			path:        PathNilai,
			wantAllowed: true,
		},
		{
			name:         "student to grade entry",
			session:      &stubSession{authenticated: true, principal: principalWithRole("siswa")},
			path:         PathNilai,
			wantRedirect: PathDashboard,
		},
		{
			name:        "parent to my grades",
			session:     &stubSession{authenticated: true, principal: principalWithRole("orang tua")},
			path:        PathNilaiSaya,
			wantAllowed: true,
		},
		{
			name:         "teacher to user management",
			session:      &stubSession{authenticated: true, principal: principalWithRole("guru")},
			path:         PathUsers,
			wantRedirect: PathDashboard,
		},
		{
			name:        "admin to sub path",
			session:     &stubSession{authenticated: true, principal: principalWithRole("admin")},
			path:        "/siswa/12/",
			wantAllowed: true,
		},
		{
			name:         "unknown path",
			session:      &stubSession{authenticated: true, principal: principalWithRole("admin")},
			path:         "/tidak-ada",
			wantRedirect: PathDashboard,
		},
		{
			name:         "root authenticated",
			session:      &stubSession{authenticated: true, principal: principalWithRole("admin")},
			path:         "/",
			wantRedirect: PathDashboard,
		},
		{
			name:         "root anonymous",
			session:      &stubSession{},
			path:         "",
			wantRedirect: PathLogin,
		},
		{
			name:        "no role still reaches dashboard",
			session:     &stubSession{authenticated: true, principal: &models.Principal{}},
			path:        PathDashboard,
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Decide(ctx, tt.session, tt.path)
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantRedirect, d.Redirect)
		})
	}
}

func TestGuard_Decide_ReevaluatesEveryNavigation(t *testing.T) {
	ctx := context.Background()
	g := NewGuard(nil)
	s := &stubSession{authenticated: true, principal: principalWithRole("admin")}

	assert.True(t, g.Decide(ctx, s, PathUsers).Allowed)

	// сессия завершилась между переходами
	s.authenticated = false
	d := g.Decide(ctx, s, PathUsers)
	assert.False(t, d.Allowed)
	assert.Equal(t, PathLogin, d.Redirect)
	assert.GreaterOrEqual(t, s.calls, 2)
}

func TestGuard_Lookup(t *testing.T) {
	g := NewGuard([]models.Route{
		{Path: "/wali-kelas"},
		{Path: "/wali-kelas/monitoring", Title: "Monitoring"},
	})

	r, ok := g.Lookup("/wali-kelas/monitoring/3")
	assert.True(t, ok)
	assert.Equal(t, "Monitoring", r.Title)

	_, ok = g.Lookup("/kelas")
	assert.False(t, ok)
}

func TestSelectDashboard(t *testing.T) {
	tests := map[models.CanonicalRole]models.DashboardVariant{
		models.RoleAdmin:               models.DashboardAdmin,
		models.RoleWaliKelas:           models.DashboardHomeroomTeacher,
		models.RoleWaliKelasSpaced:     models.DashboardHomeroomTeacher,
		models.RoleGuru:                models.DashboardTeacher,
		models.RoleKepalaSekolah:       models.DashboardPrincipal,
		models.RoleKepalaSekolahSpaced: models.DashboardPrincipal,
		models.RoleSiswa:               models.DashboardStudent,
		models.RoleOrangTua:            models.DashboardParent,
		models.RoleOrangTuaSpaced:      models.DashboardParent,
		models.RoleNone:                models.DashboardGeneric,
		"operator":                     models.DashboardGeneric,
		"ADMIN":                        models.DashboardGeneric,
	}

	for role, want := range tests {
		assert.Equal(t, want, SelectDashboard(role), "role %q", role)
	}
}
