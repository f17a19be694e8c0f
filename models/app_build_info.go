// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const buildInfoUnknown = "N/A"

// AppBuildInfo carries build-time metadata injected through linker flags.
// It is printed on startup and shown by the TUI build overlay.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Empty values read as "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: orUnknown(version),
		date:    orUnknown(date),
		commit:  orUnknown(commit),
	}
}

func orUnknown(s string) string {
	if s == "" {
		return buildInfoUnknown
	}
	return s
}

// Version returns the release version.
func (a AppBuildInfo) Version() string { return orUnknown(a.version) }

// Date returns the build date.
func (a AppBuildInfo) Date() string { return orUnknown(a.date) }

// Commit returns the source commit.
func (a AppBuildInfo) Commit() string { return orUnknown(a.commit) }

// Lines returns the labelled fields in display order.
func (a AppBuildInfo) Lines() []string {
	return []string{
		"Build version: " + a.Version(),
		"Build date: " + a.Date(),
		"Build commit: " + a.Commit(),
	}
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("SIM Sekolah %s (%s, %s)", a.Version(), a.Date(), a.Commit())
}
