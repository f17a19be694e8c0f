// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "sort"

// RekapSiswa is one student's attendance recap as returned by
// /absensi/rekap/siswa/{id} and, per row, by /absensi/rekap/kelas/{id}.
type RekapSiswa struct {
	SiswaID         int64   `json:"siswa_id,omitempty"`
	Nama            string  `json:"nama,omitempty"`
	Siswa           *Siswa  `json:"siswa,omitempty"`
	TotalPertemuan  int     `json:"total_pertemuan"`
	Hadir           int     `json:"hadir"`
	Izin            int     `json:"izin"`
	Sakit           int     `json:"sakit"`
	Alfa            int     `json:"alfa"`
	PersentaseHadir float64 `json:"persentase_hadir"`
}

// Rekap converts the server counters into a [RekapAbsensi].
func (r RekapSiswa) Rekap() RekapAbsensi {
	return RekapAbsensi{
		Hadir: r.Hadir,
		Izin:  r.Izin,
		Sakit: r.Sakit,
		Alfa:  r.Alfa,
		Total: r.TotalPertemuan,
	}
}

// StudentName prefers the embedded student record.
func (r RekapSiswa) StudentName() string {
	if r.Siswa != nil && r.Siswa.Nama != "" {
		return r.Siswa.Nama
	}
	return r.Nama
}

type RekapKelas struct {
	Kelas      *Kelas       `json:"kelas,omitempty"`
	TotalSiswa int          `json:"total_siswa"`
	Rekap      []RekapSiswa `json:"rekap"`
}

// NilaiSiswa is a student's report for one semester.
type NilaiSiswa struct {
	Siswa        *Siswa  `json:"siswa,omitempty"`
	Nilai        []Nilai `json:"nilai"`
	TotalMapel   int     `json:"total_mapel"`
	RataRata     float64 `json:"rata_rata"`
	PredikatUmum string  `json:"predikat_umum"`
}

type KelasSiswa struct {
	Kelas *Kelas  `json:"kelas,omitempty"`
	Siswa []Siswa `json:"siswa"`
	Total int     `json:"total"`
}

// Weekday names used by the schedule endpoints, Monday first.
var Weekdays = []string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// JadwalSaya is the personal weekly schedule. Guru is set for teachers,
// Siswa for students.
type JadwalSaya struct {
	Guru          *Guru               `json:"guru,omitempty"`
	Siswa         *Siswa              `json:"siswa,omitempty"`
	JadwalPerHari map[string][]Jadwal `json:"jadwal_per_hari"`
}

// Flatten lists the schedule in weekday order, then by start time.
func (j JadwalSaya) Flatten() []Jadwal {
	out := make([]Jadwal, 0)
	for _, day := range Weekdays {
		out = append(out, j.JadwalPerHari[day]...)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].HariKe != out[b].HariKe {
			return out[a].HariKe < out[b].HariKe
		}
		return out[a].JamMulai < out[b].JamMulai
	})
	return out
}

type AnakSaya struct {
	OrangTua *OrangTua `json:"orang_tua,omitempty"`
	Anak     []Anak    `json:"anak"`
	Total    int       `json:"total"`
}

// Anak links a parent to one child.
type Anak struct {
	ID       int64  `json:"id,omitempty"`
	SiswaID  int64  `json:"siswa_id"`
	Hubungan string `json:"hubungan,omitempty"`
	Siswa    *Siswa `json:"siswa,omitempty"`
}

type RaporGenerated struct {
	Rapor    Rapor  `json:"rapor"`
	Download string `json:"download"`
}
