// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"sync"

	"github.com/MKhiriev/sim-sekolah/internal/rbac"
	"github.com/MKhiriev/sim-sekolah/internal/service"
	"github.com/MKhiriev/sim-sekolah/models"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeSession is an in-memory session used by the screen tests.
type fakeSession struct {
	mu            sync.Mutex
	principal     *models.Principal
	authenticated bool
	restoreCalls  int
	restoreErr    error
	loginAs       *models.Principal
	loginErr      error
	logouts       int
	refreshCalls  int
	refreshAs     *models.Principal
	refreshErr    error
}

var _ service.ClientSessionService = (*fakeSession)(nil)

func signedIn(name string, role string) *fakeSession {
	return &fakeSession{
		principal:     &models.Principal{Nama: name, Role: models.StringRole(role)},
		authenticated: true,
	}
}

func (s *fakeSession) Restore(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreCalls++
	return s.restoreErr
}

func (s *fakeSession) Restored() bool { return true }

func (s *fakeSession) Login(_ context.Context, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loginErr != nil {
		return s.loginErr
	}
	s.principal = s.loginAs
	s.authenticated = true
	return nil
}

func (s *fakeSession) Logout(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logouts++
	s.principal = nil
	s.authenticated = false
	return nil
}

func (s *fakeSession) IsAuthenticated(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated && s.principal != nil
}

func (s *fakeSession) Principal() *models.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal
}

func (s *fakeSession) Token() string { return "" }

func (s *fakeSession) Role() models.CanonicalRole {
	return rbac.ExtractRole(s.Principal())
}

func (s *fakeSession) Expire(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = nil
	s.authenticated = false
}

func (s *fakeSession) Check(context.Context) bool { return false }

func (s *fakeSession) Refresh(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshCalls++
	if s.refreshErr != nil {
		return s.refreshErr
	}
	if s.refreshAs != nil {
		s.principal = s.refreshAs
	}
	return nil
}

func (s *fakeSession) OnSessionEnd(func(service.SessionEndReason)) {}

// fakeResource serves a fixed list and records deletions.
type fakeResource[T any] struct {
	mu      sync.Mutex
	items   []T
	queries []models.ListQuery
	deleted []int64
	created []T
	updated []T
}

func (r *fakeResource[T]) List(_ context.Context, q models.ListQuery) (models.Page[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	return models.Page[T]{
		Items:      r.items,
		Pagination: models.Pagination{Page: 1, Limit: q.Limit, Total: int64(len(r.items)), TotalPages: 1},
	}, nil
}

func (r *fakeResource[T]) Get(context.Context, int64) (T, error) {
	var zero T
	return zero, nil
}

func (r *fakeResource[T]) Create(_ context.Context, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, item)
	return item, nil
}

func (r *fakeResource[T]) Update(_ context.Context, _ int64, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, item)
	return item, nil
}

func (r *fakeResource[T]) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return nil
}

// fakeAcademic implements the calls the tests reach. Anything else panics
// through the nil embedded interface.
type fakeAcademic struct {
	service.ClientAcademicService

	siswa   *fakeResource[models.Siswa]
	users   *fakeResource[models.User]
	kelas   *fakeResource[models.Kelas]
	nilai   *fakeResource[models.Nilai]
	absensi *fakeResource[models.Absensi]

	semester models.Semester
	schedule models.JadwalSaya
	roster   models.KelasSiswa
	bulk     []models.AbsensiBulkRequest
}

func newFakeAcademic() *fakeAcademic {
	return &fakeAcademic{
		siswa:    &fakeResource[models.Siswa]{},
		users:    &fakeResource[models.User]{},
		kelas:    &fakeResource[models.Kelas]{},
		nilai:    &fakeResource[models.Nilai]{},
		absensi:  &fakeResource[models.Absensi]{},
		semester: models.Semester{ID: 3, Nama: "Ganjil", IsAktif: true},
	}
}

func (a *fakeAcademic) Siswa() service.ResourceService[models.Siswa] { return a.siswa }
func (a *fakeAcademic) Users() service.ResourceService[models.User]  { return a.users }
func (a *fakeAcademic) Kelas() service.ResourceService[models.Kelas] { return a.kelas }
func (a *fakeAcademic) Nilai() service.ResourceService[models.Nilai] { return a.nilai }

func (a *fakeAcademic) Absensi() service.ResourceService[models.Absensi] { return a.absensi }

func (a *fakeAcademic) ActiveSemester(context.Context) (models.Semester, error) {
	return a.semester, nil
}

func (a *fakeAcademic) MySchedule(context.Context, int64) (models.JadwalSaya, error) {
	return a.schedule, nil
}

func (a *fakeAcademic) SiswaByKelas(context.Context, int64) (models.KelasSiswa, error) {
	return a.roster, nil
}

func (a *fakeAcademic) BulkAttendance(_ context.Context, req models.AbsensiBulkRequest) error {
	a.bulk = append(a.bulk, req)
	return nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
)
