// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TahunAjaran is an academic year, e.g. "2024/2025".
type TahunAjaran struct {
	ID      int64  `json:"id,omitempty"`
	Nama    string `json:"nama" validate:"required,max=20"`
	IsAktif bool   `json:"is_aktif"`
}

// Semester is one half of an academic year ("Ganjil" or "Genap").
type Semester struct {
	ID            int64        `json:"id,omitempty"`
	TahunAjaranID int64        `json:"tahun_ajaran_id" validate:"required"`
	Nama          string       `json:"nama" validate:"required,oneof=Ganjil Genap"`
	IsAktif       bool         `json:"is_aktif"`
	TahunAjaran   *TahunAjaran `json:"tahun_ajaran,omitempty"`
}

// Jurusan is a study programme (major).
type Jurusan struct {
	ID   int64  `json:"id,omitempty"`
	Kode string `json:"kode" validate:"required,max=10"`
	Nama string `json:"nama" validate:"required,max=100"`
}

// Guru is a teacher.
type Guru struct {
	ID           int64  `json:"id,omitempty"`
	UserID       int64  `json:"user_id,omitempty"`
	NIP          string `json:"nip"`
	Nama         string `json:"nama" validate:"required,max=100"`
	JenisKelamin string `json:"jenis_kelamin,omitempty"`
	Alamat       string `json:"alamat,omitempty"`
	Telepon      string `json:"telepon,omitempty"`
}

// Kelas is a class group, e.g. "X RPL 1".
type Kelas struct {
	ID            int64    `json:"id,omitempty"`
	Nama          string   `json:"nama" validate:"required,max=20"`
	Tingkat       string   `json:"tingkat" validate:"required,oneof=X XI XII"`
	JurusanID     int64    `json:"jurusan_id" validate:"required"`
	WaliKelasID   *int64   `json:"wali_kelas_id,omitempty"`
	TahunAjaranID int64    `json:"tahun_ajaran_id" validate:"required"`
	Jurusan       *Jurusan `json:"jurusan,omitempty"`
	WaliKelas     *Guru    `json:"wali_kelas,omitempty"`
}

// Siswa is a student.
type Siswa struct {
	ID           int64      `json:"id,omitempty"`
	UserID       int64      `json:"user_id,omitempty"`
	NISN         string     `json:"nisn" validate:"required,max=20"`
	NIS          string     `json:"nis,omitempty"`
	Nama         string     `json:"nama" validate:"required,max=100"`
	JenisKelamin string     `json:"jenis_kelamin,omitempty"`
	TanggalLahir *time.Time `json:"tanggal_lahir,omitempty"`
	Alamat       string     `json:"alamat,omitempty"`
	KelasID      *int64     `json:"kelas_id,omitempty"`
	Kelas        *Kelas     `json:"kelas,omitempty"`
}

// OrangTua is a parent or guardian linked to one or more students.
type OrangTua struct {
	ID        int64   `json:"id,omitempty"`
	UserID    int64   `json:"user_id,omitempty"`
	Nama      string  `json:"nama" validate:"required"`
	Telepon   string  `json:"telepon,omitempty"`
	Pekerjaan string  `json:"pekerjaan,omitempty"`
	Alamat    string  `json:"alamat,omitempty"`
	Siswa     []Siswa `json:"siswa,omitempty"`
}

// DefaultKKM is the minimum passing score used when a subject has none.
const DefaultKKM = 75

// MataPelajaran is a subject.
type MataPelajaran struct {
	ID   int64   `json:"id,omitempty"`
	Kode string  `json:"kode" validate:"required,max=20"`
	Nama string  `json:"nama" validate:"required,max=100"`
	KKM  float64 `json:"kkm" validate:"gte=0,lte=100"`
}

// Jadwal is one weekly lesson slot. HariKe is 1 (Senin) to 6 (Sabtu).
type Jadwal struct {
	ID              int64          `json:"id,omitempty"`
	KelasID         int64          `json:"kelas_id" validate:"required"`
	GuruID          int64          `json:"guru_id" validate:"required"`
	MataPelajaranID int64          `json:"mata_pelajaran_id" validate:"required"`
	SemesterID      int64          `json:"semester_id" validate:"required"`
	HariKe          int            `json:"hari_ke" validate:"gte=1,lte=6"`
	JamMulai        string         `json:"jam_mulai" validate:"required,clock"`
	JamSelesai      string         `json:"jam_selesai" validate:"required,clock"`
	Kelas           *Kelas         `json:"kelas,omitempty"`
	Guru            *Guru          `json:"guru,omitempty"`
	MataPelajaran   *MataPelajaran `json:"mata_pelajaran,omitempty"`
}

// Attendance statuses.
const (
	StatusHadir = "hadir"
	StatusIzin  = "izin"
	StatusSakit = "sakit"
	StatusAlfa  = "alfa"
)

// AttendanceStatuses lists the statuses in display order.
var AttendanceStatuses = []string{StatusHadir, StatusIzin, StatusSakit, StatusAlfa}

// Absensi is one attendance record of a student for a lesson slot.
type Absensi struct {
	ID         int64     `json:"id,omitempty"`
	SiswaID    int64     `json:"siswa_id" validate:"required"`
	JadwalID   int64     `json:"jadwal_id" validate:"required"`
	Tanggal    time.Time `json:"tanggal" validate:"required"`
	Status     string    `json:"status" validate:"required,oneof=hadir izin sakit alfa"`
	Keterangan string    `json:"keterangan,omitempty"`
	Siswa      *Siswa    `json:"siswa,omitempty"`
}

// AbsensiBulkRequest is the body of POST /absensi/bulk.
type AbsensiBulkRequest struct {
	JadwalID int64          `json:"jadwal_id" validate:"required"`
	Tanggal  string         `json:"tanggal" validate:"required,datetime=2006-01-02"`
	Items    []AbsensiEntry `json:"items" validate:"required,min=1,dive"`
}

// AbsensiEntry is one line of a bulk attendance request.
type AbsensiEntry struct {
	SiswaID    int64  `json:"siswa_id" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=hadir izin sakit alfa"`
	Keterangan string `json:"keterangan,omitempty"`
}

// RekapAbsensi is an attendance summary for one student or class.
type RekapAbsensi struct {
	Hadir int `json:"hadir"`
	Izin  int `json:"izin"`
	Sakit int `json:"sakit"`
	Alfa  int `json:"alfa"`
	Total int `json:"total"`
}

// Nilai is the grade of a student in a subject for a semester.
type Nilai struct {
	ID              int64          `json:"id,omitempty"`
	SiswaID         int64          `json:"siswa_id" validate:"required"`
	MataPelajaranID int64          `json:"mata_pelajaran_id" validate:"required"`
	SemesterID      int64          `json:"semester_id" validate:"required"`
	NilaiHarian     float64        `json:"nilai_harian" validate:"gte=0,lte=100"`
	NilaiUTS        float64        `json:"nilai_uts" validate:"gte=0,lte=100"`
	NilaiUAS        float64        `json:"nilai_uas" validate:"gte=0,lte=100"`
	NilaiAkhir      float64        `json:"nilai_akhir"`
	Predikat        string         `json:"predikat,omitempty"`
	Siswa           *Siswa         `json:"siswa,omitempty"`
	MataPelajaran   *MataPelajaran `json:"mata_pelajaran,omitempty"`
}

// Report card statuses.
const (
	RaporDraft     = "draft"
	RaporPublished = "published"
)

// Rapor is a generated report card.
type Rapor struct {
	ID         int64     `json:"id,omitempty"`
	SiswaID    int64     `json:"siswa_id" validate:"required"`
	SemesterID int64     `json:"semester_id" validate:"required"`
	FilePath   string    `json:"file_path,omitempty"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	Siswa      *Siswa    `json:"siswa,omitempty"`
	Semester   *Semester `json:"semester,omitempty"`
}

// RaporGenerateRequest is the body of POST /rapor/generate.
type RaporGenerateRequest struct {
	SiswaID    int64 `json:"siswa_id" validate:"required"`
	SemesterID int64 `json:"semester_id" validate:"required"`
}

// User is an account as listed by the user-management screen.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Nama     string `json:"nama" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	RoleID   int64  `json:"role_id,omitempty"`
	Role     Role   `json:"role,omitzero"`
	IsActive bool   `json:"is_active"`
}
