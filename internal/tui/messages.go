// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/sim-sekolah/internal/service"
	"github.com/MKhiriev/sim-sekolah/models"
)

// NavigateTo asks the root model to open the screen at Path. The route
// guard decides whether the screen is shown or where to redirect.
type NavigateTo struct {
	Path string
}

// LoginResult is produced by the login screen after a login attempt.
type LoginResult struct {
	Err error
}

type restoredMsg struct {
	err error
}

// userRefreshedMsg reports the re-read of the signed-in user after restore.
// before is the role the restored session had.
type userRefreshedMsg struct {
	before models.CanonicalRole
	err    error
}

// sessionEndedMsg is sent from outside the UI loop when the session ends.
type sessionEndedMsg struct {
	reason service.SessionEndReason
}

type logoutDoneMsg struct {
	err error
}

// tableLoadedMsg carries one page of rows for the table with the given id.
type tableLoadedMsg struct {
	tableID int
	data    tableData
	err     error
}

type rowDeletedMsg struct {
	tableID int
	err     error
}

type actionDoneMsg struct {
	tableID int
	status  string
	err     error
}

type dashboardLoadedMsg struct {
	lines []string
	err   error
}

type gradeSavedMsg struct {
	err error
}

type attendanceRosterMsg struct {
	roster []rosterLine
	saved  models.RekapAbsensi
	err    error
}

type attendanceSavedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
