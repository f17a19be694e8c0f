// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants: the message
// strings the SIM Sekolah backend writes into its response envelopes, and
// the messages the client shows for failures that never reach the backend.
//
// The service layer matches server messages against these constants to
// turn a transport error into a business error.
package app

// Server messages.
const (
	// MsgWrongCredentials is returned by /auth/login for an unknown email or
	// a wrong password.
	MsgWrongCredentials = "Email atau password salah"

	// MsgTokenInvalidOrExpired is returned by the auth middleware when the
	// bearer token cannot be verified or has expired.
	MsgTokenInvalidOrExpired = "Token tidak valid atau sudah kadaluarsa"

	// MsgTokenMissing is returned when no Authorization header is sent.
	MsgTokenMissing = "Token autentikasi tidak ditemukan"

	// MsgAccessDenied is returned by the role middleware.
	MsgAccessDenied = "Anda tidak memiliki akses ke resource ini"

	MsgValidationFailed = "Validasi gagal"

	MsgEmailTaken = "Email sudah digunakan"

	// MsgScheduleClashMarker appears in every message about a schedule that
	// overlaps an existing one: on create, on update and on the dry-run
	// check.
	MsgScheduleClashMarker = "bentrok"

	MsgInvalidTimeRange = "Jam mulai harus lebih awal dari jam selesai"

	MsgSemesterRequired = "Parameter semester_id wajib diisi"

	MsgNoChildren = "Belum ada data anak terdaftar"

	// MsgNotFoundSuffix ends every "<Resource> tidak ditemukan" message.
	MsgNotFoundSuffix = "tidak ditemukan"
)

// Client messages.
const (
	// MsgLoginFailed is shown when a login fails without any server or
	// transport message to display.
	MsgLoginFailed = "Login gagal"

	// MsgTokenNotInResponse is shown when the login response carries no
	// usable token or user.
	MsgTokenNotInResponse = "Token tidak ditemukan dalam response"

	// MsgSessionNotSaved is shown when the session could not be persisted.
	MsgSessionNotSaved = "Sesi tidak dapat disimpan"

	// MsgSessionExpired is shown on the login screen after a forced logout.
	MsgSessionExpired = "Sesi berakhir, silakan masuk kembali"
)
