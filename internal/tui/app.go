// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/MKhiriev/sim-sekolah/internal/app"
	"github.com/MKhiriev/sim-sekolah/internal/rbac"
	"github.com/MKhiriev/sim-sekolah/internal/service"
	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// inputCapturer is implemented by screens that take text input. While
// capturing, global keys such as tab stay with the screen.
type inputCapturer interface {
	capturing() bool
}

// escConsumer is implemented by screens that use esc themselves, e.g. to
// leave a drill-down.
type escConsumer interface {
	consumesEsc() bool
}

// RootModel is a TUI router:
// 1) waits for the persisted session to be restored
// 2) runs every navigation through the route guard
// 3) owns the header and sidebar of the signed-in layout
// 4) handles global Ctrl+C quit and session end
// 5) delegates all other messages to the active screen
type RootModel struct {
	ctx       context.Context
	session   service.ClientSessionService
	deps      screenDeps
	guard     *rbac.Guard
	menu      []models.MenuEntry
	menuOpts  []rbac.MenuOption
	buildInfo models.AppBuildInfo

	restored bool
	pending  string

	location string
	title    string
	current  tea.Model

	sidebar      sidebarModel
	focusSidebar bool

	jumping bool
	jump    textinput.Model

	notice        string
	overlay       *errorOverlayModel
	showBuildInfo bool
	quitByUser    bool
}

// NewRootModel creates the router. Nothing is shown until the session is
// restored; the first screen is then chosen by the guard.
func NewRootModel(ctx context.Context, session service.ClientSessionService, academic service.ClientAcademicService, buildInfo models.AppBuildInfo, menuOpts ...rbac.MenuOption) RootModel {
	jump := textinput.New()
	jump.Prompt = ":"
	jump.Placeholder = "/siswa"
	jump.Width = 30

	return RootModel{
		ctx:       ctx,
		session:   session,
		deps:      screenDeps{ctx: ctx, session: session, academic: academic},
		guard:     rbac.NewGuard(nil),
		menu:      rbac.DefaultMenu(),
		menuOpts:  menuOpts,
		buildInfo: buildInfo,
		jump:      jump,
	}
}

func (r RootModel) Init() tea.Cmd {
	ctx := r.ctx
	session := r.session
	return func() tea.Msg {
		return restoredMsg{err: session.Restore(ctx)}
	}
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
		r.quitByUser = true
		return r, tea.Quit
	}

	if !r.restored {
		switch msg := msg.(type) {
		case restoredMsg:
			r.restored = true
			if msg.err != nil {
				r.overlay = &errorOverlayModel{message: errorText(msg.err)}
			}
			target := r.pending
			r.pending = ""
			if target == "" {
				target = "/"
			}
			m, cmd := r.navigate(target)
			if msg.err == nil && r.session.IsAuthenticated(r.ctx) {
				cmd = tea.Batch(cmd, r.cmdRefreshUser())
			}
			return m, cmd
		case NavigateTo:
			r.pending = msg.Path
		}
		return r, nil
	}

	switch msg := msg.(type) {
	case sessionEndedMsg:
		if msg.reason == service.SessionExpired {
			r.notice = app.MsgSessionExpired
		}
		r.focusSidebar = false
		r.jumping = false
		return r.navigate(rbac.PathLogin)
	case logoutDoneMsg:
		r.focusSidebar = false
		return r.navigate(rbac.PathLogin)
	case userRefreshedMsg:
		return r.applyRefreshedUser(msg)
	case NavigateTo:
		return r.navigate(msg.Path)
	case LoginResult:
		if msg.Err == nil {
			return r.navigate(rbac.PathDashboard)
		}
	case tea.KeyMsg:
		return r.updateKeys(msg)
	}

	return r.forward(msg)
}

func (r RootModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if r.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInf) {
			r.showBuildInfo = false
		}
		return r, nil
	}
	if r.overlay != nil {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.enter) {
			r.overlay = nil
		}
		return r, nil
	}
	if r.location == rbac.PathLogin {
		return r.forward(msg)
	}

	if r.jumping {
		switch {
		case key.Matches(msg, keys.enter):
			path := r.jump.Value()
			r.jumping = false
			r.jump.Blur()
			r.jump.SetValue("")
			r.focusSidebar = false
			return r.navigate(path)
		case key.Matches(msg, keys.esc):
			r.jumping = false
			r.jump.Blur()
			r.jump.SetValue("")
			return r, nil
		}
		var cmd tea.Cmd
		r.jump, cmd = r.jump.Update(msg)
		return r, cmd
	}

	if key.Matches(msg, keys.tab) && !isCapturing(r.current) {
		r.focusSidebar = !r.focusSidebar
		return r, nil
	}

	if !r.focusSidebar {
		if key.Matches(msg, keys.esc) && !consumesEsc(r.current) {
			r.focusSidebar = true
			r.sidebar.syncTo(r.location)
			return r, nil
		}
		return r.forward(msg)
	}

	switch {
	case key.Matches(msg, keys.up):
		r.sidebar.up()
	case key.Matches(msg, keys.down):
		r.sidebar.down()
	case key.Matches(msg, keys.enter):
		entry, ok := r.sidebar.selected()
		if !ok {
			return r, nil
		}
		r.focusSidebar = false
		return r.navigate(entry.Path)
	case key.Matches(msg, keys.esc):
		r.focusSidebar = false
	case key.Matches(msg, keys.logout):
		return r, r.cmdLogout()
	case key.Matches(msg, keys.quit):
		r.quitByUser = true
		return r, tea.Quit
	case key.Matches(msg, keys.buildInf):
		r.showBuildInfo = true
	case key.Matches(msg, keys.jump):
		r.jumping = true
		return r, r.jump.Focus()
	}
	return r, nil
}

// navigate asks the guard about path and opens the allowed screen. A denied
// path is redirected once; a redirect to the screen already shown keeps it.
func (r RootModel) navigate(path string) (tea.Model, tea.Cmd) {
	decision := r.guard.Decide(r.ctx, r.session, path)
	if !decision.Allowed {
		if decision.Redirect == r.location && r.current != nil {
			return r, nil
		}
		decision = r.guard.Decide(r.ctx, r.session, decision.Redirect)
		if !decision.Allowed {
			return r, nil
		}
	}

	r.showBuildInfo = false
	r.location = decision.Route.Path
	r.title = decision.Route.Title
	r.current = r.deps.build(decision.Route, r.notice)
	r.notice = ""

	if r.location != rbac.PathLogin {
		r.sidebar = newSidebar(r.session.Principal(), r.menu, r.menuOpts...)
		r.sidebar.syncTo(r.location)
	}

	return r, r.current.Init()
}

// cmdRefreshUser re-reads the signed-in user from the server, so a role
// or name changed since the session was saved shows up without a new login.
func (r RootModel) cmdRefreshUser() tea.Cmd {
	ctx := r.ctx
	session := r.session
	before := session.Role()
	return func() tea.Msg {
		return userRefreshedMsg{before: before, err: session.Refresh(ctx)}
	}
}

// applyRefreshedUser keeps the current screen when the role is unchanged.
// A changed role re-runs the guard on the current location.
func (r RootModel) applyRefreshedUser(msg userRefreshedMsg) (tea.Model, tea.Cmd) {
	// offline or stale: the restored user stays; a 401 ends the session elsewhere
	if msg.err != nil || r.location == rbac.PathLogin || r.session.Principal() == nil {
		return r, nil
	}
	if r.session.Role() != msg.before {
		return r.navigate(r.location)
	}
	r.sidebar = newSidebar(r.session.Principal(), r.menu, r.menuOpts...)
	r.sidebar.syncTo(r.location)
	return r, nil
}

func (r RootModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if r.current == nil {
		return r, nil
	}
	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) cmdLogout() tea.Cmd {
	ctx := r.ctx
	session := r.session
	return func() tea.Msg {
		return logoutDoneMsg{err: session.Logout(ctx)}
	}
}

func (r RootModel) View() string {
	if !r.restored {
		return appStyle.Render(renderPage("SIM SEKOLAH", "Memuat sesi...", "ctrl+c: keluar"))
	}
	if r.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(r.buildInfo))
	}
	if r.overlay != nil {
		return appStyle.Render(r.overlay.View())
	}
	if r.current == nil {
		return appStyle.Render(renderPage("SIM SEKOLAH", "", ""))
	}
	if r.location == rbac.PathLogin {
		return appStyle.Render(r.current.View())
	}

	header := renderHeader(r.session.Principal(), r.title)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		r.sidebar.View(r.location, r.focusSidebar),
		contentStyle.Render(r.current.View()),
	)

	footer := helpStyle.Render("tab menu │ o keluar │ v versi │ : buka halaman │ ctrl+c tutup")
	if r.jumping {
		footer = r.jump.View()
	}
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, "", footer))
}

func isCapturing(m tea.Model) bool {
	c, ok := m.(inputCapturer)
	return ok && c.capturing()
}

func consumesEsc(m tea.Model) bool {
	c, ok := m.(escConsumer)
	return ok && c.consumesEsc()
}
