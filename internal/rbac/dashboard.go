// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rbac

import "github.com/MKhiriev/sim-sekolah/models"

// SelectDashboard maps a canonical role to its dashboard. Unknown roles get
// [models.DashboardGeneric].
func SelectDashboard(role models.CanonicalRole) models.DashboardVariant {
	switch role {
	case models.RoleAdmin:
		return models.DashboardAdmin
	case models.RoleWaliKelas, models.RoleWaliKelasSpaced:
		return models.DashboardHomeroomTeacher
	case models.RoleGuru:
		return models.DashboardTeacher
	case models.RoleKepalaSekolah, models.RoleKepalaSekolahSpaced:
		return models.DashboardPrincipal
	case models.RoleSiswa:
		return models.DashboardStudent
	case models.RoleOrangTua, models.RoleOrangTuaSpaced:
		return models.DashboardParent
	default:
		return models.DashboardGeneric
	}
}
