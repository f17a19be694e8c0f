// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/sim-sekolah/internal/service"
	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const tablePageSize = 20

var tableSeq atomic.Int64

func nextTableID() int {
	return int(tableSeq.Add(1))
}

type column struct {
	title string
	width int
}

type tableRow struct {
	id    int64
	name  string
	cells []string
	// refs holds related ids used by drill-downs and actions.
	refs map[string]int64
}

type tableData struct {
	rows       []tableRow
	pagination models.Pagination
	summary    string
}

// rowAction is an extra key bound to the selected row. run returns the
// status line shown on success.
type rowAction struct {
	key   key.Binding
	label string
	run   func(ctx context.Context, row tableRow) (string, error)
}

// tableDef describes one table: what it shows and what it can do.
type tableDef struct {
	title      string
	columns    []column
	load       func(ctx context.Context, q models.ListQuery) (tableData, error)
	remove     func(ctx context.Context, id int64) error
	drill      func(row tableRow) (tableDef, bool)
	actions    []rowAction
	searchable bool
}

// tableModel renders a tableDef and walks its drill-down stack.
type tableModel struct {
	ctx   context.Context
	id    int
	stack []tableDef

	data      tableData
	idx       int
	page      int
	query     string
	searching bool
	search    textinput.Model

	loading bool
	spinner spinner.Model
	status  string
	errMsg  string

	showConfirm   bool
	confirm       confirmModel
	pendingDelete int64
}

func newTableModel(ctx context.Context, def tableDef) *tableModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	search := textinput.New()
	search.Placeholder = "cari..."
	search.Width = 30

	return &tableModel{
		ctx:     ctx,
		id:      nextTableID(),
		stack:   []tableDef{def},
		page:    1,
		search:  search,
		spinner: s,
		loading: true,
	}
}

func (m *tableModel) top() tableDef {
	return m.stack[len(m.stack)-1]
}

func (m *tableModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *tableModel) capturing() bool { return m.searching }

func (m *tableModel) consumesEsc() bool {
	return m.searching || m.showConfirm || len(m.stack) > 1
}

func (m *tableModel) current() (tableRow, bool) {
	if m.idx < 0 || m.idx >= len(m.data.rows) {
		return tableRow{}, false
	}
	return m.data.rows[m.idx], true
}

func (m *tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tableLoadedMsg:
		if msg.tableID != m.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.data = msg.data
		if m.idx >= len(m.data.rows) {
			m.idx = len(m.data.rows) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case rowDeletedMsg:
		if msg.tableID != m.id {
			return m, nil
		}
		m.pendingDelete = 0
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.status = "Data dihapus"
		return m, tea.Batch(m.reload(), cmdClearStatus())
	case actionDoneMsg:
		if msg.tableID != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = msg.status
		return m, cmdClearStatus()
	case copiedMsg:
		m.status = "Disalin ke clipboard"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *tableModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showConfirm {
		switch {
		case key.Matches(msg, keys.yes):
			m.showConfirm = false
			return m, m.cmdDelete(m.pendingDelete)
		case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
			m.showConfirm = false
			m.pendingDelete = 0
		}
		return m, nil
	}

	if m.searching {
		switch {
		case key.Matches(msg, keys.enter):
			m.searching = false
			m.search.Blur()
			m.query = strings.TrimSpace(m.search.Value())
			m.page = 1
			return m, m.reload()
		case key.Matches(msg, keys.esc):
			m.searching = false
			m.search.Blur()
			m.search.SetValue(m.query)
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	def := m.top()
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.data.rows)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.left):
		if m.page > 1 {
			m.page--
			return m, m.reload()
		}
	case key.Matches(msg, keys.right):
		if m.page < m.data.pagination.TotalPages {
			m.page++
			return m, m.reload()
		}
	case key.Matches(msg, keys.reload):
		return m, m.reload()
	case key.Matches(msg, keys.esc):
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
			m.resetPosition()
			return m, m.reload()
		}
	case key.Matches(msg, keys.search):
		if def.searchable {
			m.searching = true
			return m, m.search.Focus()
		}
	case key.Matches(msg, keys.enter):
		row, ok := m.current()
		if !ok || def.drill == nil {
			return m, nil
		}
		if next, ok := def.drill(row); ok {
			m.stack = append(m.stack, next)
			m.resetPosition()
			return m, m.reload()
		}
	case key.Matches(msg, keys.copy):
		row, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, m.cmdCopyToClipboard(strings.Join(row.cells, "\t"))
	case key.Matches(msg, keys.delete):
		row, ok := m.current()
		if !ok || def.remove == nil {
			return m, nil
		}
		m.showConfirm = true
		m.confirm.message = row.name
		if m.confirm.message == "" && len(row.cells) > 0 {
			m.confirm.message = row.cells[0]
		}
		m.pendingDelete = row.id
	default:
		for _, a := range def.actions {
			if key.Matches(msg, a.key) {
				row, ok := m.current()
				if !ok {
					return m, nil
				}
				return m, m.cmdAction(a, row)
			}
		}
	}
	return m, nil
}

func (m *tableModel) resetPosition() {
	m.idx = 0
	m.page = 1
	m.query = ""
	m.search.SetValue("")
	m.data = tableData{}
}

func (m *tableModel) reload() tea.Cmd {
	m.id = nextTableID()
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *tableModel) View() string {
	def := m.top()

	var b strings.Builder
	if m.searching {
		b.WriteString("Cari: ")
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	} else if m.query != "" {
		b.WriteString(helpStyle.Render("Filter: " + m.query))
		b.WriteString("\n\n")
	}

	for _, c := range def.columns {
		b.WriteString(titleStyle.Render(padRight(c.title, c.width)))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Memuat data...\n")
	case len(m.data.rows) == 0:
		b.WriteString("Tidak ada data\n")
	default:
		for i, row := range m.data.rows {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(cursor)
			for j, c := range def.columns {
				cell := ""
				if j < len(row.cells) {
					cell = row.cells[j]
				}
				b.WriteString(padRight(cell, c.width))
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
	}

	if p := m.data.pagination; p.TotalPages > 1 {
		fmt.Fprintf(&b, "\nHal. %d/%d · %d data\n", p.Page, p.TotalPages, p.Total)
	}
	if m.data.summary != "" {
		b.WriteString("\n")
		b.WriteString(m.data.summary)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Kesalahan: " + m.errMsg))
		b.WriteString("\n")
	}
	if m.showConfirm {
		b.WriteString("\n")
		b.WriteString(m.confirm.View())
	}

	return renderPage(def.title, strings.TrimRight(b.String(), "\n"), m.help())
}

func (m *tableModel) help() string {
	def := m.top()
	parts := []string{"↑/↓ pilih", "c salin", "r muat ulang"}
	if m.data.pagination.TotalPages > 1 {
		parts = append(parts, "←/→ halaman")
	}
	if def.searchable {
		parts = append(parts, "/ cari")
	}
	if def.drill != nil {
		parts = append(parts, "enter detail")
	}
	if def.remove != nil {
		parts = append(parts, "d hapus")
	}
	for _, a := range def.actions {
		parts = append(parts, strings.Join(a.key.Keys(), "/")+" "+a.label)
	}
	if len(m.stack) > 1 {
		parts = append(parts, "esc kembali")
	} else {
		parts = append(parts, "esc menu")
	}
	return strings.Join(parts, " │ ")
}

func (m *tableModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	id := m.id
	load := m.top().load
	q := models.ListQuery{Page: m.page, Limit: tablePageSize, Search: m.query}
	return func() tea.Msg {
		data, err := load(ctx, q)
		return tableLoadedMsg{tableID: id, data: data, err: err}
	}
}

func (m *tableModel) cmdDelete(id int64) tea.Cmd {
	ctx := m.ctx
	tableID := m.id
	remove := m.top().remove
	return func() tea.Msg {
		return rowDeletedMsg{tableID: tableID, err: remove(ctx, id)}
	}
}

func (m *tableModel) cmdAction(a rowAction, row tableRow) tea.Cmd {
	ctx := m.ctx
	tableID := m.id
	return func() tea.Msg {
		status, err := a.run(ctx, row)
		return actionDoneMsg{tableID: tableID, status: status, err: err}
	}
}

func (m *tableModel) cmdCopyToClipboard(text string) tea.Cmd {
	tableID := m.id
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return actionDoneMsg{tableID: tableID, err: fmt.Errorf("salin ke clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// listLoader adapts a resource list endpoint to a table loader.
func listLoader[T any](svc service.ResourceService[T], toRow func(T) tableRow) func(context.Context, models.ListQuery) (tableData, error) {
	return func(ctx context.Context, q models.ListQuery) (tableData, error) {
		page, err := svc.List(ctx, q)
		if err != nil {
			return tableData{}, err
		}
		return pagedRows(page, toRow), nil
	}
}

func pagedRows[T any](page models.Page[T], toRow func(T) tableRow) tableData {
	rows := make([]tableRow, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, toRow(item))
	}
	return tableData{rows: rows, pagination: page.Pagination}
}

// staticRows wraps an unpaginated result in a single page.
func staticRows(rows []tableRow, summary string) tableData {
	n := len(rows)
	return tableData{
		rows:       rows,
		pagination: models.Pagination{Page: 1, Limit: n, Total: int64(n), TotalPages: 1},
		summary:    summary,
	}
}
