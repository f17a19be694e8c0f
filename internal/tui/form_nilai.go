// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/sim-sekolah/internal/service"
	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldSiswa = iota
	fieldMapel
	fieldSemester
	fieldHarian
	fieldUTS
	fieldUAS
)

var gradeFieldLabels = []string{"ID Siswa", "ID Mapel", "ID Semester", "Harian", "UTS", "UAS"}

type formNilaiModel struct {
	inputs     []textinput.Model
	focus      int
	editing    bool
	id         int64
	submitting bool
	errMsg     string
}

func newFormNilaiModel(item *models.Nilai) formNilaiModel {
	inputs := make([]textinput.Model, len(gradeFieldLabels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 12
		inputs[i].CharLimit = 12
	}
	inputs[0].Focus()

	m := formNilaiModel{inputs: inputs}
	if item == nil {
		return m
	}

	m.editing = true
	m.id = item.ID
	m.inputs[fieldSiswa].SetValue(idCell(item.SiswaID))
	m.inputs[fieldMapel].SetValue(idCell(item.MataPelajaranID))
	m.inputs[fieldSemester].SetValue(idCell(item.SemesterID))
	m.inputs[fieldHarian].SetValue(strconv.FormatFloat(item.NilaiHarian, 'f', -1, 64))
	m.inputs[fieldUTS].SetValue(strconv.FormatFloat(item.NilaiUTS, 'f', -1, 64))
	m.inputs[fieldUAS].SetValue(strconv.FormatFloat(item.NilaiUAS, 'f', -1, 64))
	return m
}

// toNilai parses the inputs. The final score and predicate are computed
// locally so the preview matches what is sent.
func (m formNilaiModel) toNilai() (models.Nilai, error) {
	var (
		n   models.Nilai
		err error
	)
	ids := []*int64{&n.SiswaID, &n.MataPelajaranID, &n.SemesterID}
	for i, dst := range ids {
		if *dst, err = strconv.ParseInt(strings.TrimSpace(m.inputs[i].Value()), 10, 64); err != nil {
			return models.Nilai{}, fmt.Errorf("%s harus berupa angka", gradeFieldLabels[i])
		}
	}

	scores := []*float64{&n.NilaiHarian, &n.NilaiUTS, &n.NilaiUAS}
	for i, dst := range scores {
		field := fieldHarian + i
		raw := strings.ReplaceAll(strings.TrimSpace(m.inputs[field].Value()), ",", ".")
		if *dst, err = strconv.ParseFloat(raw, 64); err != nil {
			return models.Nilai{}, fmt.Errorf("nilai %s harus berupa angka", gradeFieldLabels[field])
		}
		if *dst < 0 || *dst > 100 {
			return models.Nilai{}, fmt.Errorf("nilai %s harus antara 0 dan 100", gradeFieldLabels[field])
		}
	}

	n.ID = m.id
	n.Compute()
	return n, nil
}

// preview renders the computed final score, or "-" while the scores are
// incomplete.
func (m formNilaiModel) preview() string {
	var scores [3]float64
	for i := range scores {
		raw := strings.ReplaceAll(strings.TrimSpace(m.inputs[fieldHarian+i].Value()), ",", ".")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "Nilai akhir: -"
		}
		scores[i] = v
	}
	final := models.FinalScore(scores[0], scores[1], scores[2])
	return fmt.Sprintf("Nilai akhir: %s (%s)", formatScore(final), models.Predicate(final))
}

func (m formNilaiModel) View() string {
	title := "Input Nilai"
	if m.editing {
		title = "Ubah Nilai #" + idCell(m.id)
	}

	var b strings.Builder
	for i, in := range m.inputs {
		fmt.Fprintf(&b, "%-12s [%s]\n", gradeFieldLabels[i]+":", in.View())
	}
	b.WriteString("\n")
	b.WriteString(m.preview())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("Bobot: harian %.0f%%, UTS %.0f%%, UAS %.0f%%",
		models.WeightHarian*100, models.WeightUTS*100, models.WeightUAS*100)))

	if m.submitting {
		b.WriteString("\n\n[Menyimpan...]")
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	return renderPage(title, b.String(), "esc batal │ tab kolom berikutnya │ enter simpan")
}

func focusNextFormNilai(m formNilaiModel) formNilaiModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevFormNilai(m formNilaiModel) formNilaiModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

// gradesScreen is the grade entry screen: the grade table plus a form for
// new or edited grades.
type gradesScreen struct {
	ctx      context.Context
	academic service.ClientAcademicService

	table    *tableModel
	form     formNilaiModel
	showForm bool

	mu    *sync.Mutex
	items map[int64]models.Nilai
}

func newGradesScreen(ctx context.Context, academic service.ClientAcademicService) *gradesScreen {
	s := &gradesScreen{
		ctx:      ctx,
		academic: academic,
		mu:       &sync.Mutex{},
		items:    map[int64]models.Nilai{},
	}

	load := listLoader(academic.Nilai(), func(n models.Nilai) tableRow {
		s.remember(n)
		row := gradeRow(n)
		if n.Siswa != nil {
			row.name = n.Siswa.Nama
		}
		return row
	})

	s.table = newTableModel(ctx, tableDef{
		title:   "Input Nilai",
		columns: append([]column{{"Siswa", 20}}, gradeColumns...),
		load: func(ctx context.Context, q models.ListQuery) (tableData, error) {
			data, err := load(ctx, q)
			for i, row := range data.rows {
				data.rows[i].cells = append([]string{valueOrDash(row.name)}, row.cells...)
			}
			return data, err
		},
		remove:     academic.Nilai().Delete,
		searchable: true,
	})
	return s
}

// remember runs on the command goroutine, hence the mutex.
func (s *gradesScreen) remember(n models.Nilai) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[n.ID] = n
}

func (s *gradesScreen) lookup(id int64) (models.Nilai, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.items[id]
	return n, ok
}

func (s *gradesScreen) capturing() bool {
	return s.showForm || s.table.capturing()
}

func (s *gradesScreen) consumesEsc() bool {
	return s.showForm || s.table.consumesEsc()
}

func (s *gradesScreen) Init() tea.Cmd {
	return s.table.Init()
}

func (s *gradesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(gradeSavedMsg); ok {
		s.form.submitting = false
		if saved.err != nil {
			s.form.errMsg = errorText(saved.err)
			return s, nil
		}
		s.showForm = false
		s.table.status = "Nilai disimpan"
		return s, tea.Batch(s.table.reload(), cmdClearStatus())
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		_, tableCmd := s.table.Update(msg)
		if !s.showForm {
			return s, tableCmd
		}
		var cmd tea.Cmd
		s.form.inputs[s.form.focus], cmd = s.form.inputs[s.form.focus].Update(msg)
		return s, tea.Batch(tableCmd, cmd)
	}

	if !s.showForm {
		if !s.table.capturing() && !s.table.showConfirm {
			switch {
			case key.Matches(keyMsg, keys.newItem):
				s.form = newFormNilaiModel(nil)
				s.showForm = true
				return s, textinput.Blink
			case key.Matches(keyMsg, keys.enter):
				row, ok := s.table.current()
				if !ok {
					return s, nil
				}
				if n, ok := s.lookup(row.id); ok {
					s.form = newFormNilaiModel(&n)
					s.showForm = true
					return s, textinput.Blink
				}
				return s, nil
			}
		}
		_, cmd := s.table.Update(msg)
		return s, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		s.showForm = false
		return s, nil
	case key.Matches(keyMsg, keys.tab), keyMsg.Type == tea.KeyDown:
		s.form = focusNextFormNilai(s.form)
		return s, nil
	case key.Matches(keyMsg, keys.backtab), keyMsg.Type == tea.KeyUp:
		s.form = focusPrevFormNilai(s.form)
		return s, nil
	case key.Matches(keyMsg, keys.enter):
		if s.form.submitting {
			return s, nil
		}
		n, err := s.form.toNilai()
		if err != nil {
			s.form.errMsg = err.Error()
			return s, nil
		}
		s.form.errMsg = ""
		s.form.submitting = true
		return s, s.cmdSave(n)
	}

	var cmd tea.Cmd
	s.form.inputs[s.form.focus], cmd = s.form.inputs[s.form.focus].Update(msg)
	return s, cmd
}

func (s *gradesScreen) View() string {
	if s.showForm {
		return s.form.View()
	}
	return s.table.View() + "\n" + helpStyle.Render("n nilai baru │ enter ubah")
}

func (s *gradesScreen) cmdSave(n models.Nilai) tea.Cmd {
	ctx := s.ctx
	svc := s.academic.Nilai()
	return func() tea.Msg {
		var err error
		if n.ID != 0 {
			_, err = svc.Update(ctx, n.ID, n)
		} else {
			_, err = svc.Create(ctx, n)
		}
		return gradeSavedMsg{err: err}
	}
}
