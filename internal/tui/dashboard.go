// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/sim-sekolah/internal/service"
	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardModel shows the role-specific dashboard. Each variant loads its
// own figures.
type dashboardModel struct {
	ctx      context.Context
	session  service.ClientSessionService
	academic service.ClientAcademicService
	variant  models.DashboardVariant
	now      func() time.Time

	lines   []string
	loading bool
	errMsg  string
	spinner spinner.Model
}

func newDashboardModel(ctx context.Context, session service.ClientSessionService, academic service.ClientAcademicService, variant models.DashboardVariant) *dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &dashboardModel{
		ctx:      ctx,
		session:  session,
		academic: academic,
		variant:  variant,
		now:      time.Now,
		loading:  true,
		spinner:  s,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.lines = msg.lines
		m.errMsg = errorText(msg.err)
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if key.Matches(msg, keys.reload) && !m.loading {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.cmdLoad())
		}
	}
	return m, nil
}

func (m *dashboardModel) View() string {
	var b strings.Builder
	b.WriteString("Selamat datang, ")
	b.WriteString(m.session.Principal().DisplayName())
	b.WriteString("!\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Memuat data...")
	} else {
		b.WriteString(strings.Join(m.lines, "\n"))
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Kesalahan: " + m.errMsg))
	}

	return renderPage(dashboardTitle(m.variant), strings.TrimRight(b.String(), "\n"), "r muat ulang │ esc menu")
}

func dashboardTitle(v models.DashboardVariant) string {
	switch v {
	case models.DashboardAdmin:
		return "Dashboard Administrator"
	case models.DashboardHomeroomTeacher:
		return "Dashboard Wali Kelas"
	case models.DashboardTeacher:
		return "Dashboard Guru"
	case models.DashboardPrincipal:
		return "Dashboard Kepala Sekolah"
	case models.DashboardStudent:
		return "Dashboard Siswa"
	case models.DashboardParent:
		return "Dashboard Orang Tua"
	default:
		return "Dashboard"
	}
}

func (m *dashboardModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	variant := m.variant
	academic := m.academic
	today := m.now()
	return func() tea.Msg {
		lines, err := loadDashboard(ctx, academic, variant, today)
		return dashboardLoadedMsg{lines: lines, err: err}
	}
}

func loadDashboard(ctx context.Context, academic service.ClientAcademicService, variant models.DashboardVariant, today time.Time) ([]string, error) {
	switch variant {
	case models.DashboardAdmin:
		return schoolCounts(ctx, academic, true)
	case models.DashboardPrincipal:
		lines, err := schoolCounts(ctx, academic, false)
		if err != nil {
			return lines, err
		}
		return append(lines, semesterLine(ctx, academic)), nil
	case models.DashboardTeacher, models.DashboardHomeroomTeacher:
		return teacherDay(ctx, academic, variant, today)
	case models.DashboardStudent:
		return studentSummary(ctx, academic)
	case models.DashboardParent:
		return parentSummary(ctx, academic)
	default:
		return []string{"Gunakan menu di sebelah kiri untuk bernavigasi."}, nil
	}
}

func countOf[T any](ctx context.Context, svc service.ResourceService[T]) (int64, error) {
	page, err := svc.List(ctx, models.ListQuery{Page: 1, Limit: 1})
	if err != nil {
		return 0, err
	}
	return page.Pagination.Total, nil
}

func schoolCounts(ctx context.Context, academic service.ClientAcademicService, withUsers bool) ([]string, error) {
	type counter struct {
		label string
		count func() (int64, error)
	}
	counters := []counter{
		{"Jumlah siswa", func() (int64, error) { return countOf(ctx, academic.Siswa()) }},
		{"Jumlah guru", func() (int64, error) { return countOf(ctx, academic.Guru()) }},
		{"Jumlah kelas", func() (int64, error) { return countOf(ctx, academic.Kelas()) }},
		{"Mata pelajaran", func() (int64, error) { return countOf(ctx, academic.MataPelajaran()) }},
	}
	if withUsers {
		counters = append(counters, counter{"Pengguna", func() (int64, error) { return countOf(ctx, academic.Users()) }})
	}

	lines := make([]string, 0, len(counters))
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return lines, err
		}
		lines = append(lines, fmt.Sprintf("%-16s %d", c.label+":", n))
	}
	return lines, nil
}

func semesterLine(ctx context.Context, academic service.ClientAcademicService) string {
	s, err := academic.ActiveSemester(ctx)
	if err != nil || s.ID == 0 {
		return "Semester aktif:  -"
	}
	name := s.Nama
	if s.TahunAjaran != nil {
		name += " " + s.TahunAjaran.Nama
	}
	return "Semester aktif:  " + name
}

// weekdayName maps t to the school weekday name, "" on Sunday.
func weekdayName(t time.Time) string {
	wd := int(t.Weekday())
	if wd == 0 || wd > len(models.Weekdays) {
		return ""
	}
	return models.Weekdays[wd-1]
}

func teacherDay(ctx context.Context, academic service.ClientAcademicService, variant models.DashboardVariant, today time.Time) ([]string, error) {
	lines := []string{semesterLine(ctx, academic)}

	semesterID, err := activeSemesterID(ctx, academic)
	if err != nil {
		return lines, err
	}
	schedule, err := academic.MySchedule(ctx, semesterID)
	if err != nil {
		return lines, err
	}

	lines = append(lines, fmt.Sprintf("Pertemuan per minggu: %d", len(schedule.Flatten())))

	day := weekdayName(today)
	lessons := schedule.JadwalPerHari[day]
	if day == "" || len(lessons) == 0 {
		lines = append(lines, "", "Tidak ada jadwal hari ini.")
	} else {
		lines = append(lines, "", "Jadwal hari ini ("+day+"):")
		for _, j := range lessons {
			row := jadwalRow(j)
			lines = append(lines, fmt.Sprintf("  %s  %s  %s", row.cells[1], row.cells[2], row.cells[3]))
		}
	}

	if variant == models.DashboardHomeroomTeacher {
		lines = append(lines, "", "Buka Monitoring Kelas untuk rekap kelas perwalian.")
	}
	return lines, nil
}

func studentSummary(ctx context.Context, academic service.ClientAcademicService) ([]string, error) {
	lines := []string{semesterLine(ctx, academic)}

	semesterID, err := activeSemesterID(ctx, academic)
	if err != nil {
		return lines, err
	}

	grades, err := academic.MyGrades(ctx, semesterID)
	if err != nil {
		return lines, err
	}
	lines = append(lines, gradesSummary(grades))

	attendance, err := academic.MyAttendance(ctx, semesterID)
	if err != nil {
		return lines, err
	}
	rekap := attendance.Rekap()
	lines = append(lines, fmt.Sprintf("Kehadiran: %s (%d dari %d pertemuan)", formatPercent(rekap.Percentage()), rekap.Hadir, rekap.Total))
	return lines, nil
}

func parentSummary(ctx context.Context, academic service.ClientAcademicService) ([]string, error) {
	children, err := academic.MyChildren(ctx)
	if err != nil {
		return nil, err
	}
	if len(children.Anak) == 0 {
		return []string{"Belum ada data anak yang terhubung."}, nil
	}

	lines := []string{fmt.Sprintf("Jumlah anak: %d", len(children.Anak))}
	for _, a := range children.Anak {
		name := "-"
		if a.Siswa != nil {
			name = a.Siswa.Nama
			if a.Siswa.Kelas != nil {
				name += " (" + a.Siswa.Kelas.Nama + ")"
			}
		}
		lines = append(lines, "  • "+name)
	}
	return lines, nil
}
