// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rbac

import (
	"testing"

	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vocabulary = []models.CanonicalRole{
	models.RoleAdmin,
	models.RoleGuru,
	models.RoleWaliKelas,
	models.RoleWaliKelasSpaced,
	models.RoleKepalaSekolah,
	models.RoleKepalaSekolahSpaced,
	models.RoleSiswa,
	models.RoleOrangTua,
	models.RoleOrangTuaSpaced,
}

func principalWithRole(role string) *models.Principal {
	return &models.Principal{ID: "1", Nama: "Test", Role: models.StringRole(role)}
}

func labels(entries []models.MenuEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

func TestVisibleMenu_OnlyAllowedEntriesInDeclaredOrder(t *testing.T) {
	all := DefaultMenu()

	for _, role := range vocabulary {
		t.Run(string(role), func(t *testing.T) {
			got := VisibleMenu(principalWithRole(string(role)), all)

			// каждый пункт разрешён для роли
			for _, e := range got {
				assert.True(t, e.AllowedRoles.Contains(role), "entry %q leaked to %q", e.Label, role)
			}

			// порядок сохраняется
			lastIdx := -1
			for _, e := range got {
				idx := indexOfLabel(all, e)
				require.GreaterOrEqual(t, idx, 0)
				assert.Greater(t, idx, lastIdx)
				lastIdx = idx
			}
		})
	}
}

func indexOfLabel(all []models.MenuEntry, e models.MenuEntry) int {
	for i, a := range all {
		if a.Label == e.Label || (a.Path == PathNilai && e.Path == PathNilaiSaya) {
			return i
		}
	}
	return -1
}

func TestVisibleMenu_GradesRewrite(t *testing.T) {
	for _, role := range []string{"siswa", "orang tua", "orang_tua"} {
		t.Run(role, func(t *testing.T) {
			got := VisibleMenu(principalWithRole(role), DefaultMenu())

			var found bool
			for _, e := range got {
				assert.NotEqual(t, PathNilai, e.Path)
				if e.Path == PathNilaiSaya {
					found = true
					assert.Equal(t, "Nilai Saya", e.Label)
				}
			}
			assert.True(t, found)
		})
	}

	for _, role := range []string{"admin", "guru", "wali_kelas"} {
		t.Run(role, func(t *testing.T) {
			got := VisibleMenu(principalWithRole(role), DefaultMenu())

			var found bool
			for _, e := range got {
				assert.NotEqual(t, PathNilaiSaya, e.Path)
				if e.Path == PathNilai {
					found = true
					assert.Equal(t, "Penilaian", e.Label)
				}
			}
			assert.True(t, found)
		})
	}
}

func TestVisibleMenu_DoesNotMutateTable(t *testing.T) {
	all := DefaultMenu()
	before := labels(all)

	got := VisibleMenu(principalWithRole("siswa"), all)
	require.NotEmpty(t, got)
	got[0].AllowedRoles[0] = "hacked"

	assert.Equal(t, before, labels(all))
	assert.Equal(t, PathNilai, all[8].Path)
	assert.Equal(t, models.RoleAdmin, all[0].AllowedRoles[0])
	assert.Equal(t, models.RoleAdmin, DefaultMenu()[0].AllowedRoles[0])
}

func TestVisibleMenu_TeacherScenario(t *testing.T) {
	p := &models.Principal{Nama: "Budi", Role: models.ObjectRole(models.RoleObject{NamaRole: "Guru"})}

	got := labels(VisibleMenu(p, DefaultMenu()))
	assert.Contains(t, got, "Absensi")
	assert.Contains(t, got, "Penilaian")
	assert.NotContains(t, got, "Manajemen User")
}

func TestVisibleMenu_NoRoleIsEmpty(t *testing.T) {
	assert.Empty(t, VisibleMenu(nil, DefaultMenu()))
	assert.Empty(t, VisibleMenu(&models.Principal{}, DefaultMenu()))
	assert.Empty(t, VisibleMenu(principalWithRole("tamu"), DefaultMenu()))
}

func TestVisibleMenu_ExactMatchVersusLoose(t *testing.T) {
	entries := []models.MenuEntry{
		{Label: "Tamu", Path: "/tamu", AllowedRoles: models.NewRoleSet("tamu_guru")},
		{Label: "Guru", Path: "/guru", AllowedRoles: models.NewRoleSet(models.RoleGuru)},
	}

	exact := VisibleMenu(principalWithRole("guru"), entries)
	assert.Equal(t, []string{"Guru"}, labels(exact))

	loose := VisibleMenu(principalWithRole("guru"), entries, WithLooseMatch(true))
	assert.Equal(t, []string{"Tamu", "Guru"}, labels(loose))

	off := VisibleMenu(principalWithRole("guru"), entries, WithLooseMatch(false))
	assert.Equal(t, []string{"Guru"}, labels(off))
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		location string
		path     string
		want     bool
	}{
		{"/siswa", "/siswa", true},
		{"/siswa/12", "/siswa", true},
		{"/siswa-baru", "/siswa", false},
		{"/nilai-saya", "/nilai", false},
		{"/dashboard", "/siswa", false},
		{"/siswa", "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsActive(tt.location, tt.path), "%s vs %s", tt.location, tt.path)
	}
}
