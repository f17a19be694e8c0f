// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJadwalSaya_Flatten(t *testing.T) {
	raw := `{
		"guru": {"id": 3, "nama": "Budi"},
		"jadwal_per_hari": {
			"Rabu":  [{"id": 5, "hari_ke": 3, "jam_mulai": "07:00", "jam_selesai": "08:30"}],
			"Senin": [
				{"id": 2, "hari_ke": 1, "jam_mulai": "10:00", "jam_selesai": "11:30"},
				{"id": 1, "hari_ke": 1, "jam_mulai": "07:00", "jam_selesai": "08:30"}
			],
			"Minggu": [{"id": 9, "hari_ke": 7, "jam_mulai": "07:00", "jam_selesai": "08:00"}]
		}
	}`

	var j JadwalSaya
	require.NoError(t, json.Unmarshal([]byte(raw), &j))
	require.NotNil(t, j.Guru)

	got := j.Flatten()

	ids := make([]int64, 0, len(got))
	for _, row := range got {
		ids = append(ids, row.ID)
	}
	// Minggu не входит в учебную неделю
	assert.Equal(t, []int64{1, 2, 5}, ids)
}

func TestJadwalSaya_FlattenEmpty(t *testing.T) {
	assert.Empty(t, JadwalSaya{}.Flatten())
	assert.NotNil(t, JadwalSaya{}.Flatten())
}

func TestRekapSiswa(t *testing.T) {
	r := RekapSiswa{Nama: "Sari", TotalPertemuan: 20, Hadir: 17, Izin: 1, Sakit: 1, Alfa: 1}

	assert.Equal(t, RekapAbsensi{Hadir: 17, Izin: 1, Sakit: 1, Alfa: 1, Total: 20}, r.Rekap())
	assert.Equal(t, "Sari", r.StudentName())

	r.Siswa = &Siswa{Nama: "Sari Dewi"}
	assert.Equal(t, "Sari Dewi", r.StudentName())

	r.Siswa = &Siswa{}
	assert.Equal(t, "Sari", r.StudentName())
}
