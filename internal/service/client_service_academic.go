// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MKhiriev/sim-sekolah/internal/adapter"
	"github.com/MKhiriev/sim-sekolah/internal/logger"
	"github.com/MKhiriev/sim-sekolah/internal/validators"
	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	pathUsers         = "/users"
	pathSiswa         = "/siswa"
	pathGuru          = "/guru"
	pathKelas         = "/kelas"
	pathMataPelajaran = "/mata-pelajaran"
	pathJurusan       = "/jurusan"
	pathTahunAjaran   = "/tahun-ajaran"
	pathSemester      = "/semester"
	pathJadwal        = "/jadwal"
	pathAbsensi       = "/absensi"
	pathNilai         = "/nilai"
	pathRapor         = "/rapor"
	pathOrangTua      = "/orang-tua"
)

type clientAcademicService struct {
	adapter   adapter.ServerAdapter
	validator validators.Validator
	cache     *expirable.LRU[string, []byte]

	users         *resourceService[models.User]
	siswa         *resourceService[models.Siswa]
	guru          *resourceService[models.Guru]
	kelas         *resourceService[models.Kelas]
	mataPelajaran *resourceService[models.MataPelajaran]
	jurusan       *resourceService[models.Jurusan]
	tahunAjaran   *resourceService[models.TahunAjaran]
	semester      *resourceService[models.Semester]
	jadwal        *resourceService[models.Jadwal]
	absensi       *resourceService[models.Absensi]
	nilai         *resourceService[models.Nilai]
	rapor         *resourceService[models.Rapor]
	orangTua      *resourceService[models.OrangTua]

	logger *logger.Logger
}

// NewClientAcademicService builds the data service. Reference lists are
// kept in an LRU of cacheSize responses, each for at most cacheTTL.
func NewClientAcademicService(serverAdapter adapter.ServerAdapter, validator validators.Validator, cacheSize int, cacheTTL time.Duration, logger *logger.Logger) ClientAcademicService {
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache := expirable.NewLRU[string, []byte](cacheSize, nil, cacheTTL)

	s := &clientAcademicService{
		adapter:   serverAdapter,
		validator: validator,
		cache:     cache,
		logger:    logger,
	}

	s.users = newResourceService[models.User](pathUsers, serverAdapter, validator, nil, logger)
	s.siswa = newResourceService[models.Siswa](pathSiswa, serverAdapter, validator, nil, logger)
	s.guru = newResourceService[models.Guru](pathGuru, serverAdapter, validator, nil, logger)
	s.jadwal = newResourceService[models.Jadwal](pathJadwal, serverAdapter, validator, nil, logger)
	s.absensi = newResourceService[models.Absensi](pathAbsensi, serverAdapter, validator, nil, logger)
	s.nilai = newResourceService[models.Nilai](pathNilai, serverAdapter, validator, nil, logger)
	s.rapor = newResourceService[models.Rapor](pathRapor, serverAdapter, validator, nil, logger)
	s.orangTua = newResourceService[models.OrangTua](pathOrangTua, serverAdapter, validator, nil, logger)

	// reference data
	s.kelas = newResourceService[models.Kelas](pathKelas, serverAdapter, validator, cache, logger)
	s.mataPelajaran = newResourceService[models.MataPelajaran](pathMataPelajaran, serverAdapter, validator, cache, logger)
	s.jurusan = newResourceService[models.Jurusan](pathJurusan, serverAdapter, validator, cache, logger)
	s.tahunAjaran = newResourceService[models.TahunAjaran](pathTahunAjaran, serverAdapter, validator, cache, logger)
	s.semester = newResourceService[models.Semester](pathSemester, serverAdapter, validator, cache, logger)

	return s
}

func (s *clientAcademicService) Users() ResourceService[models.User] { return s.users }
func (s *clientAcademicService) Siswa() ResourceService[models.Siswa] { return s.siswa }
func (s *clientAcademicService) Guru() ResourceService[models.Guru] { return s.guru }
func (s *clientAcademicService) Kelas() ResourceService[models.Kelas] { return s.kelas }
func (s *clientAcademicService) Jadwal() ResourceService[models.Jadwal] { return s.jadwal }
func (s *clientAcademicService) Nilai() ResourceService[models.Nilai] { return s.nilai }
func (s *clientAcademicService) Rapor() ResourceService[models.Rapor] { return s.rapor }

func (s *clientAcademicService) MataPelajaran() ResourceService[models.MataPelajaran] {
	return s.mataPelajaran
}

func (s *clientAcademicService) Jurusan() ResourceService[models.Jurusan] {
	return s.jurusan
}

func (s *clientAcademicService) TahunAjaran() ResourceService[models.TahunAjaran] {
	return s.tahunAjaran
}

func (s *clientAcademicService) Semester() ResourceService[models.Semester] {
	return s.semester
}

func (s *clientAcademicService) Absensi() ResourceService[models.Absensi] {
	return s.absensi
}

func (s *clientAcademicService) OrangTua() ResourceService[models.OrangTua] {
	return s.orangTua
}

func (s *clientAcademicService) ActiveSemester(ctx context.Context) (models.Semester, error) {
	body, err := cachedGet(ctx, s.adapter, s.cache, pathSemester+"/aktif", nil, s.logger)
	if err != nil {
		return models.Semester{}, err
	}
	return decodeData[models.Semester](body)
}

func (s *clientAcademicService) SiswaByKelas(ctx context.Context, kelasID int64) (models.KelasSiswa, error) {
	return fetch[models.KelasSiswa](ctx, s.adapter, pathKelas+"/"+formatID(kelasID)+"/siswa", nil)
}

func (s *clientAcademicService) MySchedule(ctx context.Context, semesterID int64) (models.JadwalSaya, error) {
	return fetch[models.JadwalSaya](ctx, s.adapter, pathJadwal+"/saya", semesterQuery(semesterID))
}

func (s *clientAcademicService) BulkAttendance(ctx context.Context, req models.AbsensiBulkRequest) error {
	if err := s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	_, err := s.adapter.Do(ctx, adapter.Request{Method: http.MethodPost, Path: pathAbsensi + "/bulk", Body: req})
	if err != nil {
		return mapAdapterError(err)
	}

	s.logger.Info().
		Str("func", "clientAcademicService.BulkAttendance").
		Int64("jadwal_id", req.JadwalID).
		Int("entries", len(req.Items)).
		Msg("attendance recorded")
	return nil
}

func (s *clientAcademicService) MyAttendance(ctx context.Context, semesterID int64) (models.RekapSiswa, error) {
	if semesterID <= 0 {
		return models.RekapSiswa{}, ErrSemesterRequired
	}
	return fetch[models.RekapSiswa](ctx, s.adapter, pathAbsensi+"/saya", semesterQuery(semesterID))
}

func (s *clientAcademicService) StudentAttendance(ctx context.Context, siswaID, semesterID int64) (models.RekapSiswa, error) {
	return fetch[models.RekapSiswa](ctx, s.adapter, pathAbsensi+"/rekap/siswa/"+formatID(siswaID), semesterQuery(semesterID))
}

func (s *clientAcademicService) ClassAttendance(ctx context.Context, kelasID, semesterID int64) (models.RekapKelas, error) {
	return fetch[models.RekapKelas](ctx, s.adapter, pathAbsensi+"/rekap/kelas/"+formatID(kelasID), semesterQuery(semesterID))
}

func (s *clientAcademicService) MyGrades(ctx context.Context, semesterID int64) (models.NilaiSiswa, error) {
	if semesterID <= 0 {
		return models.NilaiSiswa{}, ErrSemesterRequired
	}
	return fetch[models.NilaiSiswa](ctx, s.adapter, pathNilai+"/saya", semesterQuery(semesterID))
}

func (s *clientAcademicService) StudentGrades(ctx context.Context, siswaID, semesterID int64) (models.NilaiSiswa, error) {
	if semesterID <= 0 {
		return models.NilaiSiswa{}, ErrSemesterRequired
	}
	return fetch[models.NilaiSiswa](ctx, s.adapter, pathNilai+"/siswa/"+formatID(siswaID), semesterQuery(semesterID))
}

func (s *clientAcademicService) GenerateRapor(ctx context.Context, req models.RaporGenerateRequest) (models.RaporGenerated, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.RaporGenerated{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	body, err := s.adapter.Do(ctx, adapter.Request{Method: http.MethodPost, Path: pathRapor + "/generate", Body: req})
	if err != nil {
		return models.RaporGenerated{}, mapAdapterError(err)
	}
	return decodeData[models.RaporGenerated](body)
}

func (s *clientAcademicService) MyRapor(ctx context.Context) ([]models.Rapor, error) {
	return fetch[[]models.Rapor](ctx, s.adapter, pathRapor+"/saya", nil)
}

func (s *clientAcademicService) MyChildren(ctx context.Context) (models.AnakSaya, error) {
	return fetch[models.AnakSaya](ctx, s.adapter, pathOrangTua+"/anak-saya", nil)
}

func (s *clientAcademicService) ClearCache() {
	s.cache.Purge()
	s.logger.Debug().Str("func", "clientAcademicService.ClearCache").Msg("reference cache cleared")
}

// fetch performs an uncached GET and decodes the envelope's data.
func fetch[T any](ctx context.Context, a adapter.ServerAdapter, path string, query url.Values) (T, error) {
	body, err := a.Do(ctx, adapter.Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		var zero T
		return zero, mapAdapterError(err)
	}
	return decodeData[T](body)
}

func semesterQuery(semesterID int64) url.Values {
	if semesterID <= 0 {
		return nil
	}
	return url.Values{"semester_id": {formatID(semesterID)}}
}

func formatID(v int64) string {
	return strconv.FormatInt(v, 10)
}
