// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/sim-sekolah/models"
)

// SessionEndReason tells listeners why the session ended.
type SessionEndReason int

const (
	// SessionLoggedOut follows an explicit logout.
	SessionLoggedOut SessionEndReason = iota
	// SessionExpired follows a 401, a vanished token or a passed JWT expiry.
	SessionExpired
)

// ClientSessionService is the single source of truth for who is logged in.
// It is safe for concurrent use by the UI loop, background commands, the
// HTTP 401 hook and the session watcher.
type ClientSessionService interface {
	// Restore loads the persisted session once per process. A stored user
	// that is not a JSON object is purged together with the token, and the
	// session starts unauthenticated without an error. Later calls are
	// no-ops.
	Restore(ctx context.Context) error

	// Restored reports whether Restore has completed.
	Restored() bool

	// Login validates the credentials, authenticates against the server and
	// persists token and user together. Every failure is an *AuthError and
	// leaves no session keys behind.
	Login(ctx context.Context, identifier, secret string) error

	// Logout purges the session and notifies listeners with
	// [SessionLoggedOut]. It never fails the caller: a storage error is
	// logged and returned, but memory is cleared regardless.
	Logout(ctx context.Context) error

	// IsAuthenticated reports whether a principal is in memory and both
	// session keys are persisted right now.
	IsAuthenticated(ctx context.Context) bool

	// Principal returns the current user, or nil.
	Principal() *models.Principal

	// Token returns the current bearer token, or "".
	Token() string

	// Role returns the canonical role of the current user.
	Role() models.CanonicalRole

	// Expire purges the session and notifies listeners with
	// [SessionExpired] when a session was active.
	Expire(ctx context.Context)

	// Check expires the session when a key vanished from storage or the
	// token's expiry has passed. It reports whether it expired the session.
	Check(ctx context.Context) bool

	// Refresh reloads the user record from /auth/me.
	Refresh(ctx context.Context) error

	// OnSessionEnd registers fn to run after every logout or expiry.
	OnSessionEnd(fn func(SessionEndReason))
}

// ResourceService is the CRUD surface shared by every resource endpoint.
type ResourceService[T any] interface {
	List(ctx context.Context, q models.ListQuery) (models.Page[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int64, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// ClientAcademicService fetches and edits the school data shown by the
// screens. Reference lists (jurusan, mata pelajaran, tahun ajaran, semester,
// kelas) are cached until they expire, are edited, or the session ends.
type ClientAcademicService interface {
	Users() ResourceService[models.User]
	Siswa() ResourceService[models.Siswa]
	Guru() ResourceService[models.Guru]
	Kelas() ResourceService[models.Kelas]
	MataPelajaran() ResourceService[models.MataPelajaran]
	Jurusan() ResourceService[models.Jurusan]
	TahunAjaran() ResourceService[models.TahunAjaran]
	Semester() ResourceService[models.Semester]
	Jadwal() ResourceService[models.Jadwal]
	Absensi() ResourceService[models.Absensi]
	Nilai() ResourceService[models.Nilai]
	Rapor() ResourceService[models.Rapor]
	OrangTua() ResourceService[models.OrangTua]

	// ActiveSemester returns the semester flagged active by the server.
	ActiveSemester(ctx context.Context) (models.Semester, error)

	// SiswaByKelas lists the students of one class.
	SiswaByKelas(ctx context.Context, kelasID int64) (models.KelasSiswa, error)

	// MySchedule returns the weekly schedule of the logged-in teacher or
	// student for semesterID.
	MySchedule(ctx context.Context, semesterID int64) (models.JadwalSaya, error)

	// BulkAttendance records the attendance of a whole class meeting.
	BulkAttendance(ctx context.Context, req models.AbsensiBulkRequest) error

	// MyAttendance returns the attendance recap of the logged-in student,
	// or of a parent's first child.
	MyAttendance(ctx context.Context, semesterID int64) (models.RekapSiswa, error)

	StudentAttendance(ctx context.Context, siswaID, semesterID int64) (models.RekapSiswa, error)
	ClassAttendance(ctx context.Context, kelasID, semesterID int64) (models.RekapKelas, error)

	// MyGrades returns the grades of the logged-in student.
	MyGrades(ctx context.Context, semesterID int64) (models.NilaiSiswa, error)

	StudentGrades(ctx context.Context, siswaID, semesterID int64) (models.NilaiSiswa, error)

	// GenerateRapor asks the server to render a report card.
	GenerateRapor(ctx context.Context, req models.RaporGenerateRequest) (models.RaporGenerated, error)

	// MyRapor lists the report cards visible to the logged-in student or
	// parent.
	MyRapor(ctx context.Context) ([]models.Rapor, error)

	// MyChildren lists the children of the logged-in parent.
	MyChildren(ctx context.Context) (models.AnakSaya, error)

	// ClearCache drops every cached reference list.
	ClearCache()
}

// SessionWatchJob periodically checks the session in the background.
type SessionWatchJob interface {
	// Start launches the watcher. It checks every interval, defaulting to
	// 30 seconds when interval is zero or negative. A running watcher is
	// stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the watcher to exit and blocks until it has.
	Stop()
}

// AppInfoService exposes the build metadata shown by the version overlay.
type AppInfoService interface {
	BuildInfo(ctx context.Context) models.AppBuildInfo
}
