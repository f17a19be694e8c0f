// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/sim-sekolah/internal/service"
	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	attKelas = iota
	attJadwal
	attTanggal
)

var attendanceFieldLabels = []string{"ID Kelas", "ID Jadwal", "Tanggal"}

type rosterLine struct {
	siswaID int64
	name    string
	status  string
}

// attendanceModel records the attendance of one class meeting. The first
// step picks the class, lesson slot and date; the second edits the roster.
type attendanceModel struct {
	ctx      context.Context
	academic service.ClientAcademicService

	inputs []textinput.Model
	focus  int

	roster   []rosterLine
	idx      int
	onRoster bool

	jadwalID int64
	tanggal  string
	saved    models.RekapAbsensi

	loading bool
	saving  bool
	status  string
	errMsg  string
}

func newAttendanceModel(ctx context.Context, academic service.ClientAcademicService) *attendanceModel {
	inputs := make([]textinput.Model, len(attendanceFieldLabels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 12
		inputs[i].CharLimit = 12
	}
	inputs[attTanggal].SetValue(time.Now().Format(time.DateOnly))
	inputs[attKelas].Focus()

	return &attendanceModel{
		ctx:      ctx,
		academic: academic,
		inputs:   inputs,
	}
}

func (m *attendanceModel) capturing() bool { return !m.onRoster }

func (m *attendanceModel) consumesEsc() bool { return m.onRoster }

func (m *attendanceModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *attendanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case attendanceRosterMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		if len(msg.roster) == 0 {
			m.errMsg = "Kelas ini belum memiliki siswa"
			return m, nil
		}
		m.errMsg = ""
		m.roster = msg.roster
		m.saved = msg.saved
		m.idx = 0
		m.onRoster = true
		return m, nil
	case attendanceSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.saved = m.rekap()
		m.status = fmt.Sprintf("Absensi %d siswa disimpan", len(m.roster))
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		if m.onRoster {
			return m.updateRoster(msg)
		}
		return m.updateForm(msg)
	}

	if !m.onRoster {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *attendanceModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.tab), msg.Type == tea.KeyDown:
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, keys.backtab), msg.Type == tea.KeyUp:
		m.moveFocus(-1)
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.loading {
			return m, nil
		}
		kelasID, jadwalID, tanggal, err := m.parseHeader()
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.jadwalID = jadwalID
		m.tanggal = tanggal
		m.loading = true
		return m, m.cmdLoadRoster(kelasID)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *attendanceModel) updateRoster(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.esc):
		m.onRoster = false
		m.roster = nil
		m.errMsg = ""
		return m, textinput.Blink
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.roster)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.right):
		m.cycleStatus(1)
	case key.Matches(msg, keys.left):
		m.cycleStatus(-1)
	case key.Matches(msg, keys.save):
		m.saving = true
		m.errMsg = ""
		return m, m.cmdSave(m.request())
	}
	return m, nil
}

func (m *attendanceModel) moveFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *attendanceModel) parseHeader() (kelasID, jadwalID int64, tanggal string, err error) {
	ids := []*int64{&kelasID, &jadwalID}
	for i, dst := range ids {
		if *dst, err = strconv.ParseInt(strings.TrimSpace(m.inputs[i].Value()), 10, 64); err != nil || *dst <= 0 {
			return 0, 0, "", fmt.Errorf("%s harus berupa angka", attendanceFieldLabels[i])
		}
	}
	tanggal = strings.TrimSpace(m.inputs[attTanggal].Value())
	if _, err = time.Parse(time.DateOnly, tanggal); err != nil {
		return 0, 0, "", errors.New("tanggal harus berformat YYYY-MM-DD")
	}
	return kelasID, jadwalID, tanggal, nil
}

func (m *attendanceModel) cycleStatus(delta int) {
	if m.idx < 0 || m.idx >= len(m.roster) {
		return
	}
	statuses := models.AttendanceStatuses
	pos := 0
	for i, s := range statuses {
		if s == m.roster[m.idx].status {
			pos = i
			break
		}
	}
	m.roster[m.idx].status = statuses[(pos+delta+len(statuses))%len(statuses)]
}

func (m *attendanceModel) rekap() models.RekapAbsensi {
	var r models.RekapAbsensi
	for _, line := range m.roster {
		r.Add(line.status)
	}
	return r
}

func (m *attendanceModel) request() models.AbsensiBulkRequest {
	items := make([]models.AbsensiEntry, 0, len(m.roster))
	for _, line := range m.roster {
		items = append(items, models.AbsensiEntry{SiswaID: line.siswaID, Status: line.status})
	}
	return models.AbsensiBulkRequest{JadwalID: m.jadwalID, Tanggal: m.tanggal, Items: items}
}

func (m *attendanceModel) View() string {
	var b strings.Builder
	if !m.onRoster {
		for i, in := range m.inputs {
			fmt.Fprintf(&b, "%-10s [%s]\n", attendanceFieldLabels[i]+":", in.View())
		}
		if m.loading {
			b.WriteString("\n[Memuat siswa...]\n")
		}
		m.writeMessages(&b)
		return renderPage("Input Absensi", strings.TrimRight(b.String(), "\n"), "tab kolom berikutnya │ enter muat siswa")
	}

	fmt.Fprintf(&b, "Jadwal #%d · %s\n\n", m.jadwalID, m.tanggal)
	for i, line := range m.roster {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s ‹%s›\n", cursor, padRight(line.name, 28), padRight(line.status, 5))
	}

	b.WriteString("\n" + rekapLine(m.rekap()) + "\n")
	if m.saved.Total > 0 {
		b.WriteString("Tersimpan: " + rekapLine(m.saved) + "\n")
	}
	if m.saving {
		b.WriteString("\n[Menyimpan...]\n")
	}
	m.writeMessages(&b)
	return renderPage("Input Absensi", strings.TrimRight(b.String(), "\n"), "↑/↓ pilih │ ←/→ ubah status │ ctrl+s simpan │ esc kembali")
}

func rekapLine(r models.RekapAbsensi) string {
	return fmt.Sprintf("Hadir %d · Izin %d · Sakit %d · Alfa %d · Kehadiran %s",
		r.Hadir, r.Izin, r.Sakit, r.Alfa, formatPercent(r.Percentage()))
}

func (m *attendanceModel) writeMessages(b *strings.Builder) {
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
}

// cmdLoadRoster loads the class roster and the attendance already saved for
// the meeting. Saved statuses replace the hadir default.
func (m *attendanceModel) cmdLoadRoster(kelasID int64) tea.Cmd {
	ctx := m.ctx
	academic := m.academic
	query := models.ListQuery{
		Page:  1,
		Limit: 100,
		Filters: map[string]string{
			"jadwal_id": strconv.FormatInt(m.jadwalID, 10),
			"tanggal":   m.tanggal,
		},
	}
	return func() tea.Msg {
		kelas, err := academic.SiswaByKelas(ctx, kelasID)
		if err != nil {
			return attendanceRosterMsg{err: err}
		}

		saved, err := academic.Absensi().List(ctx, query)
		if err != nil {
			return attendanceRosterMsg{err: err}
		}
		previous := make(map[int64]string, len(saved.Items))
		for _, a := range saved.Items {
			previous[a.SiswaID] = a.Status
		}

		roster := make([]rosterLine, 0, len(kelas.Siswa))
		for _, s := range kelas.Siswa {
			status, ok := previous[s.ID]
			if !ok {
				status = models.StatusHadir
			}
			roster = append(roster, rosterLine{siswaID: s.ID, name: s.Nama, status: status})
		}
		return attendanceRosterMsg{roster: roster, saved: models.Summarize(saved.Items)}
	}
}

func (m *attendanceModel) cmdSave(req models.AbsensiBulkRequest) tea.Cmd {
	ctx := m.ctx
	academic := m.academic
	return func() tea.Msg {
		return attendanceSavedMsg{err: academic.BulkAttendance(ctx, req)}
	}
}
