// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/sim-sekolah/internal/adapter"
	"github.com/MKhiriev/sim-sekolah/internal/service"
)

var ErrUserQuit = errors.New("pengguna keluar dari aplikasi")

const msgServerUnavailable = "Tidak ada jaringan atau server tidak tersedia"

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return msgServerUnavailable
	}

	return err.Error()
}

// errorText picks the message shown to the user: the login error's own
// message, then the server's message, then a network hint.
func errorText(err error) string {
	if err == nil {
		return ""
	}

	var authErr *service.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		if authErr.Kind == service.AuthErrTransport {
			return humanizeServerUnavailableError(errors.New(authErr.Message))
		}
		return authErr.Message
	}

	if msg := adapter.ServerMessage(err); msg != "" {
		return msg
	}

	switch {
	case errors.Is(err, service.ErrSemesterRequired):
		return "Semester aktif belum ditentukan"
	case errors.Is(err, service.ErrServerUnavailable):
		return msgServerUnavailable
	}
	return humanizeServerUnavailableError(err)
}
