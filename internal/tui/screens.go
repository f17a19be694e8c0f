// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MKhiriev/sim-sekolah/internal/rbac"
	"github.com/MKhiriev/sim-sekolah/internal/service"
	"github.com/MKhiriev/sim-sekolah/models"
	tea "github.com/charmbracelet/bubbletea"
)

// screenDeps builds the screen for a route. Screens are built fresh on
// every navigation, so they always reflect the current session.
type screenDeps struct {
	ctx      context.Context
	session  service.ClientSessionService
	academic service.ClientAcademicService
}

func (d screenDeps) build(route models.Route, notice string) tea.Model {
	role := d.session.Role()

	switch route.Path {
	case rbac.PathLogin:
		return NewLoginModel(d.ctx, d.session, notice)
	case rbac.PathDashboard:
		return newDashboardModel(d.ctx, d.session, d.academic, rbac.SelectDashboard(role))
	case rbac.PathUsers:
		return newTableModel(d.ctx, d.usersTable())
	case rbac.PathSiswa:
		return newTableModel(d.ctx, d.siswaTable())
	case rbac.PathGuru:
		return newTableModel(d.ctx, d.guruTable())
	case rbac.PathKelas:
		return newTableModel(d.ctx, d.kelasTable(route.Title))
	case rbac.PathMapel:
		return newTableModel(d.ctx, d.mapelTable())
	case rbac.PathJurusan:
		return newTableModel(d.ctx, d.jurusanTable())
	case rbac.PathTahunAjaran:
		return newTableModel(d.ctx, d.tahunAjaranTable())
	case rbac.PathJadwal:
		return newTableModel(d.ctx, d.jadwalTable(role))
	case rbac.PathAbsensi:
		switch {
		case role == models.RoleSiswa:
			return newTableModel(d.ctx, d.myAttendanceTable())
		case isParent(role):
			return newTableModel(d.ctx, d.childrenTable("Absensi Anak", d.childAttendanceTable))
		default:
			return newAttendanceModel(d.ctx, d.academic)
		}
	case rbac.PathNilai:
		return newGradesScreen(d.ctx, d.academic)
	case rbac.PathNilaiSaya:
		if isParent(role) {
			return newTableModel(d.ctx, d.childrenTable(rbac.LabelNilaiSaya, d.childGradesTable))
		}
		return newTableModel(d.ctx, d.gradesTable(rbac.LabelNilaiSaya, func(ctx context.Context, semesterID int64) (models.NilaiSiswa, error) {
			return d.academic.MyGrades(ctx, semesterID)
		}))
	case rbac.PathRapor:
		if rbac.IsStudentOrParent(role) {
			return newTableModel(d.ctx, d.myRaporTable())
		}
		return newTableModel(d.ctx, d.raporTable())
	case rbac.PathOrangTua:
		if isParent(role) {
			return newTableModel(d.ctx, d.childrenTable("Anak Saya", d.childGradesTable))
		}
		return newTableModel(d.ctx, d.orangTuaTable(role))
	case rbac.PathLaporan:
		return newTableModel(d.ctx, d.kelasTable("Laporan Kehadiran", withDrill(d.classAttendanceTable)))
	case rbac.PathAnalytics:
		return newTableModel(d.ctx, d.analyticsTable())
	case rbac.PathWaliKelasMonitor:
		return newTableModel(d.ctx, d.kelasTable("Monitoring Kelas", withDrill(d.monitoringTable)))
	}

	return newTableModel(d.ctx, tableDef{
		title: route.Title,
		load: func(context.Context, models.ListQuery) (tableData, error) {
			return tableData{}, nil
		},
	})
}

func isParent(role models.CanonicalRole) bool {
	return role == models.RoleOrangTua || role == models.RoleOrangTuaSpaced
}

func idCell(id int64) string {
	return strconv.FormatInt(id, 10)
}

func activeSemesterID(ctx context.Context, academic service.ClientAcademicService) (int64, error) {
	s, err := academic.ActiveSemester(ctx)
	if err != nil {
		return 0, err
	}
	if s.ID == 0 {
		return 0, service.ErrSemesterRequired
	}
	return s.ID, nil
}

func (d screenDeps) usersTable() tableDef {
	return tableDef{
		title:      "Manajemen User",
		columns:    []column{{"ID", 5}, {"Nama", 24}, {"Email", 28}, {"Role", 14}, {"Aktif", 6}},
		searchable: true,
		load: listLoader(d.academic.Users(), func(u models.User) tableRow {
			role := rbac.RoleLabel(&models.Principal{Role: u.Role})
			return tableRow{id: u.ID, name: u.Nama, cells: []string{idCell(u.ID), u.Nama, u.Email, role, yesNo(u.IsActive)}}
		}),
		remove: d.academic.Users().Delete,
	}
}

func siswaRow(s models.Siswa) tableRow {
	kelas := "-"
	if s.Kelas != nil {
		kelas = s.Kelas.Nama
	}
	return tableRow{id: s.ID, name: s.Nama, cells: []string{s.NISN, s.Nama, kelas, valueOrDash(s.JenisKelamin)}}
}

func (d screenDeps) siswaTable() tableDef {
	return tableDef{
		title:      "Data Siswa",
		columns:    []column{{"NISN", 12}, {"Nama", 26}, {"Kelas", 10}, {"JK", 4}},
		searchable: true,
		load:       listLoader(d.academic.Siswa(), siswaRow),
		remove:     d.academic.Siswa().Delete,
		drill:      withDrill(d.studentGradesTable),
	}
}

func (d screenDeps) guruTable() tableDef {
	return tableDef{
		title:      "Data Guru",
		columns:    []column{{"NIP", 20}, {"Nama", 28}, {"Telepon", 16}},
		searchable: true,
		load: listLoader(d.academic.Guru(), func(g models.Guru) tableRow {
			return tableRow{id: g.ID, name: g.Nama, cells: []string{valueOrDash(g.NIP), g.Nama, valueOrDash(g.Telepon)}}
		}),
		remove: d.academic.Guru().Delete,
	}
}

// kelasTable lists the classes. With no drill given, a class opens its
// student list.
func (d screenDeps) kelasTable(title string, drill ...func(tableRow) (tableDef, bool)) tableDef {
	def := tableDef{
		title:   title,
		columns: []column{{"Kelas", 12}, {"Tingkat", 8}, {"Jurusan", 20}, {"Wali Kelas", 24}},
		load: listLoader(d.academic.Kelas(), func(k models.Kelas) tableRow {
			jurusan, wali := "-", "-"
			if k.Jurusan != nil {
				jurusan = k.Jurusan.Nama
			}
			if k.WaliKelas != nil {
				wali = k.WaliKelas.Nama
			}
			return tableRow{id: k.ID, name: k.Nama, cells: []string{k.Nama, k.Tingkat, jurusan, wali}}
		}),
		drill: withDrill(d.classStudentsTable),
	}
	if len(drill) > 0 {
		def.drill = drill[0]
		return def
	}
	def.remove = d.academic.Kelas().Delete
	return def
}

func withDrill(next func(tableRow) tableDef) func(tableRow) (tableDef, bool) {
	return func(row tableRow) (tableDef, bool) {
		return next(row), true
	}
}

func (d screenDeps) classStudentsTable(kelas tableRow) tableDef {
	return tableDef{
		title:   "Siswa Kelas " + kelas.name,
		columns: []column{{"NISN", 12}, {"Nama", 26}, {"Kelas", 10}, {"JK", 4}},
		load: func(ctx context.Context, _ models.ListQuery) (tableData, error) {
			res, err := d.academic.SiswaByKelas(ctx, kelas.id)
			if err != nil {
				return tableData{}, err
			}
			rows := make([]tableRow, 0, len(res.Siswa))
			for _, s := range res.Siswa {
				row := siswaRow(s)
				row.cells[2] = kelas.name
				rows = append(rows, row)
			}
			return staticRows(rows, fmt.Sprintf("Jumlah siswa: %d", res.Total)), nil
		},
		drill: withDrill(d.studentGradesTable),
	}
}

func (d screenDeps) mapelTable() tableDef {
	return tableDef{
		title:      "Mata Pelajaran",
		columns:    []column{{"Kode", 10}, {"Nama", 30}, {"KKM", 6}},
		searchable: true,
		load: listLoader(d.academic.MataPelajaran(), func(m models.MataPelajaran) tableRow {
			return tableRow{id: m.ID, name: m.Nama, cells: []string{m.Kode, m.Nama, strconv.FormatFloat(m.KKM, 'f', -1, 64)}}
		}),
		remove: d.academic.MataPelajaran().Delete,
	}
}

func (d screenDeps) jurusanTable() tableDef {
	return tableDef{
		title:   "Data Jurusan",
		columns: []column{{"Kode", 10}, {"Nama", 40}},
		load: listLoader(d.academic.Jurusan(), func(j models.Jurusan) tableRow {
			return tableRow{id: j.ID, name: j.Nama, cells: []string{j.Kode, j.Nama}}
		}),
		remove: d.academic.Jurusan().Delete,
	}
}

func (d screenDeps) tahunAjaranTable() tableDef {
	return tableDef{
		title:   "Tahun Ajaran",
		columns: []column{{"Tahun Ajaran", 14}, {"Aktif", 6}},
		load: listLoader(d.academic.TahunAjaran(), func(t models.TahunAjaran) tableRow {
			return tableRow{id: t.ID, name: t.Nama, cells: []string{t.Nama, yesNo(t.IsAktif)}}
		}),
		remove: d.academic.TahunAjaran().Delete,
		drill: withDrill(func(ta tableRow) tableDef {
			return tableDef{
				title:   "Semester " + ta.name,
				columns: []column{{"Semester", 10}, {"Aktif", 6}},
				load: func(ctx context.Context, q models.ListQuery) (tableData, error) {
					q.Filters = map[string]string{"tahun_ajaran_id": idCell(ta.id)}
					return listLoader(d.academic.Semester(), func(s models.Semester) tableRow {
						return tableRow{id: s.ID, cells: []string{s.Nama, yesNo(s.IsAktif)}}
					})(ctx, q)
				},
			}
		}),
	}
}

var jadwalColumns = []column{{"Hari", 8}, {"Jam", 13}, {"Kelas", 10}, {"Mata Pelajaran", 22}, {"Guru", 20}}

func jadwalRow(j models.Jadwal) tableRow {
	day := "-"
	if j.HariKe >= 1 && j.HariKe <= len(models.Weekdays) {
		day = models.Weekdays[j.HariKe-1]
	}
	kelas, mapel, guru := "-", "-", "-"
	if j.Kelas != nil {
		kelas = j.Kelas.Nama
	}
	if j.MataPelajaran != nil {
		mapel = j.MataPelajaran.Nama
	}
	if j.Guru != nil {
		guru = j.Guru.Nama
	}
	return tableRow{id: j.ID, name: mapel, cells: []string{day, j.JamMulai + "-" + j.JamSelesai, kelas, mapel, guru}}
}

func (d screenDeps) jadwalTable(role models.CanonicalRole) tableDef {
	switch role {
	case models.RoleGuru, models.RoleWaliKelas, models.RoleWaliKelasSpaced, models.RoleSiswa:
		return tableDef{
			title:   "Jadwal Saya",
			columns: jadwalColumns,
			load: func(ctx context.Context, _ models.ListQuery) (tableData, error) {
				semesterID, err := activeSemesterID(ctx, d.academic)
				if err != nil {
					return tableData{}, err
				}
				res, err := d.academic.MySchedule(ctx, semesterID)
				if err != nil {
					return tableData{}, err
				}
				flat := res.Flatten()
				rows := make([]tableRow, 0, len(flat))
				for _, j := range flat {
					rows = append(rows, jadwalRow(j))
				}
				return staticRows(rows, fmt.Sprintf("Jumlah pertemuan per minggu: %d", len(rows))), nil
			},
		}
	}

	def := tableDef{
		title:   "Jadwal Pelajaran",
		columns: jadwalColumns,
		load:    listLoader(d.academic.Jadwal(), jadwalRow),
	}
	if role == models.RoleAdmin {
		def.remove = d.academic.Jadwal().Delete
	}
	return def
}

var rekapColumns = []column{{"Nama", 24}, {"Pertemuan", 9}, {"Hadir", 6}, {"Izin", 5}, {"Sakit", 6}, {"Alfa", 5}, {"Kehadiran", 9}}

func rekapRow(r models.RekapSiswa) tableRow {
	rekap := r.Rekap()
	id := r.SiswaID
	if id == 0 && r.Siswa != nil {
		id = r.Siswa.ID
	}
	return tableRow{
		id:   id,
		name: r.StudentName(),
		cells: []string{
			r.StudentName(),
			strconv.Itoa(rekap.Total),
			strconv.Itoa(rekap.Hadir),
			strconv.Itoa(rekap.Izin),
			strconv.Itoa(rekap.Sakit),
			strconv.Itoa(rekap.Alfa),
			formatPercent(rekap.Percentage()),
		},
	}
}

func (d screenDeps) myAttendanceTable() tableDef {
	return tableDef{
		title:   "Absensi Saya",
		columns: rekapColumns,
		load: func(ctx context.Context, _ models.ListQuery) (tableData, error) {
			semesterID, err := activeSemesterID(ctx, d.academic)
			if err != nil {
				return tableData{}, err
			}
			r, err := d.academic.MyAttendance(ctx, semesterID)
			if err != nil {
				return tableData{}, err
			}
			return staticRows([]tableRow{rekapRow(r)}, ""), nil
		},
	}
}

func (d screenDeps) childAttendanceTable(child tableRow) tableDef {
	return tableDef{
		title:   "Absensi " + child.name,
		columns: rekapColumns,
		load: func(ctx context.Context, _ models.ListQuery) (tableData, error) {
			semesterID, err := activeSemesterID(ctx, d.academic)
			if err != nil {
				return tableData{}, err
			}
			r, err := d.academic.StudentAttendance(ctx, child.id, semesterID)
			if err != nil {
				return tableData{}, err
			}
			if r.StudentName() == "" {
				r.Nama = child.name
			}
			return staticRows([]tableRow{rekapRow(r)}, ""), nil
		},
	}
}

func (d screenDeps) classAttendanceTable(kelas tableRow) tableDef {
	return tableDef{
		title:   "Rekap Kehadiran " + kelas.name,
		columns: rekapColumns,
		load: func(ctx context.Context, _ models.ListQuery) (tableData, error) {
			semesterID, err := activeSemesterID(ctx, d.academic)
			if err != nil {
				return tableData{}, err
			}
			res, err := d.academic.ClassAttendance(ctx, kelas.id, semesterID)
			if err != nil {
				return tableData{}, err
			}
			rows := make([]tableRow, 0, len(res.Rekap))
			for _, r := range res.Rekap {
				rows = append(rows, rekapRow(r))
			}
			return staticRows(rows, fmt.Sprintf("Jumlah siswa: %d · Rata-rata kehadiran: %s", res.TotalSiswa, formatPercent(classPresence(res)))), nil
		},
		drill: withDrill(d.studentGradesTable),
	}
}

// classPresence is the mean presence percentage of the students who had
// at least one meeting.
func classPresence(res models.RekapKelas) float64 {
	var (
		sum float64
		n   int
	)
	for _, r := range res.Rekap {
		rekap := r.Rekap()
		if rekap.Total == 0 {
			continue
		}
		sum += rekap.Percentage()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (d screenDeps) analyticsTable() tableDef {
	return tableDef{
		title:   "Analitik Kehadiran per Kelas",
		columns: []column{{"Kelas", 12}, {"Siswa", 6}, {"Kehadiran", 10}},
		load: func(ctx context.Context, q models.ListQuery) (tableData, error) {
			semesterID, err := activeSemesterID(ctx, d.academic)
			if err != nil {
				return tableData{}, err
			}
			page, err := d.academic.Kelas().List(ctx, q)
			if err != nil {
				return tableData{}, err
			}
			rows := make([]tableRow, 0, len(page.Items))
			for _, k := range page.Items {
				res, err := d.academic.ClassAttendance(ctx, k.ID, semesterID)
				if err != nil {
					return tableData{}, err
				}
				rows = append(rows, tableRow{id: k.ID, name: k.Nama, cells: []string{k.Nama, strconv.Itoa(res.TotalSiswa), formatPercent(classPresence(res))}})
			}
			return tableData{rows: rows, pagination: page.Pagination}, nil
		},
		drill: withDrill(d.classAttendanceTable),
	}
}

var gradeColumns = []column{{"Mata Pelajaran", 22}, {"Harian", 7}, {"UTS", 7}, {"UAS", 7}, {"Akhir", 7}, {"Predikat", 8}, {"Tuntas", 6}}

func gradeRow(n models.Nilai) tableRow {
	mapel := idCell(n.MataPelajaranID)
	if n.MataPelajaran != nil {
		mapel = n.MataPelajaran.Nama
	}
	if n.NilaiAkhir == 0 && n.Predikat == "" {
		n.Compute()
	}
	return tableRow{
		id: n.ID,
		cells: []string{
			mapel,
			formatScore(n.NilaiHarian),
			formatScore(n.NilaiUTS),
			formatScore(n.NilaiUAS),
			formatScore(n.NilaiAkhir),
			valueOrDash(n.Predikat),
			yesNo(n.Passed()),
		},
		refs: map[string]int64{"siswa_id": n.SiswaID, "semester_id": n.SemesterID},
	}
}

func gradesSummary(res models.NilaiSiswa) string {
	avg := res.RataRata
	if avg == 0 {
		avg = models.AverageScore(res.Nilai)
	}
	predikat := res.PredikatUmum
	if predikat == "" && len(res.Nilai) > 0 {
		predikat = models.Predicate(avg)
	}
	return fmt.Sprintf("Jumlah mapel: %d · Rata-rata: %s · Predikat: %s", len(res.Nilai), formatScore(avg), valueOrDash(predikat))
}

func (d screenDeps) gradesTable(title string, fetch func(ctx context.Context, semesterID int64) (models.NilaiSiswa, error)) tableDef {
	return tableDef{
		title:   title,
		columns: gradeColumns,
		load: func(ctx context.Context, _ models.ListQuery) (tableData, error) {
			semesterID, err := activeSemesterID(ctx, d.academic)
			if err != nil {
				return tableData{}, err
			}
			res, err := fetch(ctx, semesterID)
			if err != nil {
				return tableData{}, err
			}
			rows := make([]tableRow, 0, len(res.Nilai))
			for _, n := range res.Nilai {
				rows = append(rows, gradeRow(n))
			}
			return staticRows(rows, gradesSummary(res)), nil
		},
	}
}

func (d screenDeps) studentGradesTable(student tableRow) tableDef {
	return d.gradesTable("Nilai "+student.name, func(ctx context.Context, semesterID int64) (models.NilaiSiswa, error) {
		return d.academic.StudentGrades(ctx, student.id, semesterID)
	})
}

func (d screenDeps) childGradesTable(child tableRow) tableDef {
	return d.gradesTable("Nilai "+child.name, func(ctx context.Context, semesterID int64) (models.NilaiSiswa, error) {
		return d.academic.StudentGrades(ctx, child.id, semesterID)
	})
}

// childrenTable lists the parent's children; a child opens next.
func (d screenDeps) childrenTable(title string, next func(tableRow) tableDef) tableDef {
	return tableDef{
		title:   title,
		columns: []column{{"Nama", 26}, {"NISN", 12}, {"Hubungan", 10}},
		load: func(ctx context.Context, _ models.ListQuery) (tableData, error) {
			res, err := d.academic.MyChildren(ctx)
			if err != nil {
				return tableData{}, err
			}
			rows := make([]tableRow, 0, len(res.Anak))
			for _, a := range res.Anak {
				name, nisn := "-", "-"
				if a.Siswa != nil {
					name, nisn = a.Siswa.Nama, a.Siswa.NISN
				}
				rows = append(rows, tableRow{id: a.SiswaID, name: name, cells: []string{name, nisn, valueOrDash(a.Hubungan)}})
			}
			return staticRows(rows, ""), nil
		},
		drill: withDrill(next),
	}
}

var raporColumns = []column{{"Siswa", 24}, {"Semester", 16}, {"Status", 10}, {"Berkas", 30}}

func raporRow(r models.Rapor) tableRow {
	siswa, semester := idCell(r.SiswaID), idCell(r.SemesterID)
	if r.Siswa != nil {
		siswa = r.Siswa.Nama
	}
	if r.Semester != nil {
		semester = r.Semester.Nama
		if r.Semester.TahunAjaran != nil {
			semester += " " + r.Semester.TahunAjaran.Nama
		}
	}
	return tableRow{
		id:    r.ID,
		cells: []string{siswa, semester, valueOrDash(r.Status), valueOrDash(r.FilePath)},
		refs:  map[string]int64{"siswa_id": r.SiswaID, "semester_id": r.SemesterID},
	}
}

func (d screenDeps) myRaporTable() tableDef {
	return tableDef{
		title:   "Rapor Saya",
		columns: raporColumns,
		load: func(ctx context.Context, _ models.ListQuery) (tableData, error) {
			list, err := d.academic.MyRapor(ctx)
			if err != nil {
				return tableData{}, err
			}
			rows := make([]tableRow, 0, len(list))
			for _, r := range list {
				rows = append(rows, raporRow(r))
			}
			return staticRows(rows, ""), nil
		},
	}
}

func (d screenDeps) raporTable() tableDef {
	return tableDef{
		title:   "Rapor",
		columns: raporColumns,
		load:    listLoader(d.academic.Rapor(), raporRow),
		actions: []rowAction{{
			key:   keys.generate,
			label: "buat ulang",
			run: func(ctx context.Context, row tableRow) (string, error) {
				return d.generateRapor(ctx, row.refs["siswa_id"], row.refs["semester_id"])
			},
		}},
	}
}

func (d screenDeps) generateRapor(ctx context.Context, siswaID, semesterID int64) (string, error) {
	res, err := d.academic.GenerateRapor(ctx, models.RaporGenerateRequest{SiswaID: siswaID, SemesterID: semesterID})
	if err != nil {
		return "", err
	}
	if res.Download != "" {
		return "Rapor dibuat: " + res.Download, nil
	}
	return "Rapor dibuat", nil
}

func (d screenDeps) monitoringTable(kelas tableRow) tableDef {
	def := d.classStudentsTable(kelas)
	def.actions = []rowAction{{
		key:   keys.generate,
		label: "buat rapor",
		run: func(ctx context.Context, row tableRow) (string, error) {
			semesterID, err := activeSemesterID(ctx, d.academic)
			if err != nil {
				return "", err
			}
			return d.generateRapor(ctx, row.id, semesterID)
		},
	}}
	return def
}

func (d screenDeps) orangTuaTable(role models.CanonicalRole) tableDef {
	def := tableDef{
		title:      "Data Orang Tua",
		columns:    []column{{"Nama", 26}, {"Telepon", 16}, {"Pekerjaan", 16}, {"Anak", 6}},
		searchable: true,
		load: listLoader(d.academic.OrangTua(), func(o models.OrangTua) tableRow {
			return tableRow{id: o.ID, name: o.Nama, cells: []string{o.Nama, valueOrDash(o.Telepon), valueOrDash(o.Pekerjaan), strconv.Itoa(len(o.Siswa))}}
		}),
	}
	if role == models.RoleAdmin {
		def.remove = d.academic.OrangTua().Delete
	}
	return def
}
