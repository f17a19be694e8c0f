// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rbac

import (
	"slices"

	"github.com/MKhiriev/sim-sekolah/models"
)

// Screen paths.
const (
	PathLogin             = "/login"
	PathDashboard         = "/dashboard"
	PathUsers             = "/users"
	PathSiswa             = "/siswa"
	PathGuru              = "/guru"
	PathKelas             = "/kelas"
	PathMapel             = "/mapel"
	PathJurusan           = "/jurusan"
	PathTahunAjaran       = "/tahun-ajaran"
	PathJadwal            = "/jadwal"
	PathAbsensi           = "/absensi"
	PathNilai             = "/nilai"
	PathNilaiSaya         = "/nilai-saya"
	PathRapor             = "/rapor"
	PathAnalytics         = "/analytics"
	PathLaporan           = "/laporan"
	PathOrangTua          = "/orang-tua"
	PathWaliKelasMonitor  = "/wali-kelas/monitoring"
	LabelNilaiSaya        = "Nilai Saya"
	defaultLandingPath    = PathDashboard
	unauthenticatedTarget = PathLogin
)

var (
	principalRoles = []models.CanonicalRole{models.RoleKepalaSekolah, models.RoleKepalaSekolahSpaced}
	parentRoles    = []models.CanonicalRole{models.RoleOrangTua, models.RoleOrangTuaSpaced}
	homeroomRoles  = []models.CanonicalRole{models.RoleWaliKelas, models.RoleWaliKelasSpaced}
)

func roles(groups ...[]models.CanonicalRole) models.RoleSet {
	var set models.RoleSet
	for _, g := range groups {
		set = append(set, g...)
	}
	return set
}

func one(r models.CanonicalRole) []models.CanonicalRole {
	return []models.CanonicalRole{r}
}

var (
	everyone = roles(one(models.RoleAdmin), principalRoles, one(models.RoleGuru),
		homeroomRoles, one(models.RoleSiswa), parentRoles)
	adminOnly   = roles(one(models.RoleAdmin))
	management  = roles(one(models.RoleAdmin), principalRoles)
	staff       = roles(one(models.RoleAdmin), principalRoles, one(models.RoleGuru), homeroomRoles)
	teachers    = roles(one(models.RoleAdmin), one(models.RoleGuru), homeroomRoles)
	schedule    = roles(one(models.RoleAdmin), principalRoles, one(models.RoleGuru), homeroomRoles, one(models.RoleSiswa))
	learners    = roles(one(models.RoleAdmin), one(models.RoleGuru), homeroomRoles, one(models.RoleSiswa), parentRoles)
	ownGrades   = roles(one(models.RoleSiswa), parentRoles)
	homeroom    = roles(one(models.RoleAdmin), homeroomRoles)
	parentsView = roles(one(models.RoleAdmin), principalRoles, parentRoles)
)

// menuTable is the sidebar in declared order.
var menuTable = []models.MenuEntry{
	{Label: "Dashboard", Path: PathDashboard, Icon: "📊", AllowedRoles: everyone},
	{Label: "Manajemen User", Path: PathUsers, Icon: "👥", AllowedRoles: adminOnly},
	{Label: "Data Siswa", Path: PathSiswa, Icon: "🎓", AllowedRoles: staff},
	{Label: "Data Guru", Path: PathGuru, Icon: "👨", AllowedRoles: management},
	{Label: "Data Kelas", Path: PathKelas, Icon: "🏫", AllowedRoles: management},
	{Label: "Mata Pelajaran", Path: PathMapel, Icon: "📚", AllowedRoles: management},
	{Label: "Jadwal Pelajaran", Path: PathJadwal, Icon: "📅", AllowedRoles: schedule},
	{Label: "Absensi", Path: PathAbsensi, Icon: "✅", AllowedRoles: learners},
	{Label: "Penilaian", Path: PathNilai, Icon: "📝", AllowedRoles: learners},
	{Label: "Rapor", Path: PathRapor, Icon: "📄", AllowedRoles: everyone},
	{Label: "Laporan", Path: PathLaporan, Icon: "📈", AllowedRoles: management},
}

// routeTable lists every screen and the roles it requires.
var routeTable = []models.Route{
	{Path: PathLogin, Title: "Masuk", Public: true},
	{Path: PathDashboard, Title: "Dashboard"},
	{Path: PathUsers, Title: "Manajemen User", RequiredRoles: adminOnly},
	{Path: PathSiswa, Title: "Data Siswa", RequiredRoles: staff},
	{Path: PathGuru, Title: "Data Guru", RequiredRoles: management},
	{Path: PathKelas, Title: "Data Kelas", RequiredRoles: management},
	{Path: PathMapel, Title: "Mata Pelajaran", RequiredRoles: management},
	{Path: PathJurusan, Title: "Data Jurusan", RequiredRoles: management},
	{Path: PathTahunAjaran, Title: "Tahun Ajaran", RequiredRoles: management},
	{Path: PathJadwal, Title: "Jadwal Pelajaran", RequiredRoles: schedule},
	{Path: PathAbsensi, Title: "Absensi", RequiredRoles: learners},
	{Path: PathNilai, Title: "Input Nilai", RequiredRoles: teachers},
	{Path: PathNilaiSaya, Title: LabelNilaiSaya, RequiredRoles: ownGrades},
	{Path: PathRapor, Title: "Rapor", RequiredRoles: everyone},
	{Path: PathAnalytics, Title: "Analitik", RequiredRoles: management},
	{Path: PathLaporan, Title: "Laporan", RequiredRoles: management},
	{Path: PathOrangTua, Title: "Data Orang Tua", RequiredRoles: parentsView},
	{Path: PathWaliKelasMonitor, Title: "Monitoring Kelas", RequiredRoles: homeroom},
}

// DefaultMenu returns a copy of the sidebar table.
func DefaultMenu() []models.MenuEntry {
	out := make([]models.MenuEntry, len(menuTable))
	for i, e := range menuTable {
		out[i] = cloneEntry(e)
	}
	return out
}

// DefaultRoutes returns a copy of the route table.
func DefaultRoutes() []models.Route {
	out := make([]models.Route, len(routeTable))
	for i, r := range routeTable {
		r.RequiredRoles = slices.Clone(r.RequiredRoles)
		out[i] = r
	}
	return out
}

func cloneEntry(e models.MenuEntry) models.MenuEntry {
	e.AllowedRoles = slices.Clone(e.AllowedRoles)
	return e
}
