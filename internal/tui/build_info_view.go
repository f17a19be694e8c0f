// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/sim-sekolah/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Aplikasi: SIM Sekolah\n")
	b.WriteString(strings.Join(info.Lines(), "\n"))

	return renderPage("INFORMASI APLIKASI", b.String(), "esc: kembali")
}
