// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/sim-sekolah/internal/config"
	"github.com/MKhiriev/sim-sekolah/internal/logger"
	"github.com/MKhiriev/sim-sekolah/internal/utils"
	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter создаёт httpServerAdapter, направленный на тестовый сервер
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{
		BaseURL:        serverURL + "/api/v1",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "budi@sekolah.id", req.Email)
		assert.Empty(t, r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"token": "abc", "user": map[string]any{"id": 1}},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	body, err := a.Login(context.Background(), models.LoginRequest{Email: "budi@sekolah.id", Password: "secret1"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"token":"abc","user":{"id":1}}}`, string(body))
	// Login не выставляет токен сам: это делает сервис сессии
	assert.Empty(t, a.Token())
}

// TestLogin_UnauthorizedDoesNotTriggerHandler: 401 на логине не вызывает
// обработчик истечения сессии.
func TestLogin_UnauthorizedDoesNotTriggerHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Email atau password salah"})
	}))
	defer srv.Close()

	var calls atomic.Int32
	a := newTestAdapter(t, srv.URL)
	a.SetUnauthorizedHandler(func() { calls.Add(1) })

	_, err := a.Login(context.Background(), models.LoginRequest{Email: "x@y.z", Password: "wrong!"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Email atau password salah", ServerMessage(err))
	assert.Zero(t, calls.Load())
}

func TestLogin_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "x@y.z", Password: "secret"})

	require.Error(t, err)
	assert.Empty(t, ServerMessage(err))
}

// ── Do ───────────────────────────────────────────────────────────────────────

func TestDo_SendsBearerTraceAndQuery(t *testing.T) {
	var gotAuth, gotTrace, gotPage string
	r := chi.NewRouter()
	r.Get("/api/v1/siswa", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTrace = r.Header.Get("X-Trace-ID")
		gotPage = r.URL.Query().Get("page")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []any{}})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("  tok-123 ")

	_, err := a.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/siswa",
		Query:  url.Values{"page": {"2"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "2", gotPage)
	_, parseErr := uuid.Parse(gotTrace)
	assert.NoError(t, parseErr, "trace id must be a uuid")
}

func TestDo_TraceIDFromContext(t *testing.T) {
	var gotTrace string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTrace = r.Header.Get("X-Trace-ID")
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := utils.WithTraceID(context.Background(), "trace-from-ctx")
	_, err := a.Do(ctx, Request{Path: "/kelas"})

	require.NoError(t, err)
	assert.Equal(t, "trace-from-ctx", gotTrace)
}

func TestDo_PostsJSONBody(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/absensi/bulk", func(w http.ResponseWriter, r *http.Request) {
		var body models.AbsensiBulkRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(4), body.JadwalID)
		assert.Len(t, body.Items, 1)
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "ok"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/absensi/bulk",
		Body: models.AbsensiBulkRequest{
			JadwalID: 4,
			Tanggal:  "2025-01-06",
			Items:    []models.AbsensiEntry{{SiswaID: 1, Status: models.StatusHadir}},
		},
	})
	require.NoError(t, err)
}

// TestDo_UnauthorizedTriggersHandler: 401 на обычном запросе вызывает
// обработчик ровно один раз.
func TestDo_UnauthorizedTriggersHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Token expired"})
	}))
	defer srv.Close()

	var calls atomic.Int32
	a := newTestAdapter(t, srv.URL)
	a.SetToken("stale")
	a.SetUnauthorizedHandler(func() { calls.Add(1) })

	_, err := a.Do(context.Background(), Request{Path: "/nilai"})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

// TestDo_UnauthorizedOnLoginSiblingTriggersHandler: исключение действует
// только для самого /auth/login, а не для путей с тем же префиксом.
func TestDo_UnauthorizedOnLoginSiblingTriggersHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Token expired"})
	}))
	defer srv.Close()

	for _, path := range []string{"/auth/login-history", "/auth/login/audit", "/admin/auth/login"} {
		t.Run(path, func(t *testing.T) {
			var calls atomic.Int32
			a := newTestAdapter(t, srv.URL)
			a.SetToken("stale")
			a.SetUnauthorizedHandler(func() { calls.Add(1) })

			_, err := a.Do(context.Background(), Request{Path: path})

			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestIsLoginURL(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:8080")

	tests := []struct {
		url  string
		want bool
	}{
		{"http://localhost:8080/api/v1/auth/login", true},
		{"http://localhost:8080/api/v1/auth/login/", true},
		{"http://localhost:8080/api/v1/auth/login?next=%2Fnilai", true},
		{"http://localhost:8080/api/v1/auth/login-history", false},
		{"http://localhost:8080/auth/login", false},
		{"http://localhost:8080/api/v1/auth/me", false},
		{"://bad", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, a.isLoginURL(tt.url))
		})
	}
}

func TestMe_UsesAuthMe(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": 9}})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	body, err := a.Me(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(body), `"id":9`)
}

// ── status mapping ───────────────────────────────────────────────────────────

func TestDo_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"bad request", http.StatusBadRequest, `{"success":false,"message":"NISN wajib diisi"}`, ErrBadRequest, "NISN wajib diisi"},
		{"forbidden", http.StatusForbidden, `{"message":"Akses ditolak"}`, ErrForbidden, "Akses ditolak"},
		{"not found", http.StatusNotFound, `{"error":"Siswa tidak ditemukan"}`, ErrNotFound, "Siswa tidak ditemukan"},
		{"conflict", http.StatusConflict, `{"message":"NISN sudah terdaftar"}`, ErrConflict, "NISN sudah terdaftar"},
		{"unprocessable", http.StatusUnprocessableEntity, `{"message":"invalid"}`, ErrUnprocessable, "invalid"},
		{"internal", http.StatusInternalServerError, `boom`, ErrInternalServerError, "boom"},
		{"bad gateway", http.StatusBadGateway, ``, ErrBadGateway, ""},
		{"service unavailable", http.StatusServiceUnavailable, ``, ErrInternalServerError, "Service Unavailable"},
		{"teapot", http.StatusTeapot, `{}`, ErrBadRequest, "I'm a teapot"},
		{"unsuccessful 200", http.StatusOK, `{"success":false,"message":"Semester tidak aktif"}`, ErrUnsuccessful, "Semester tidak aktif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Do(context.Background(), Request{Path: "/x"})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, ServerMessage(err))
		})
	}
}

func TestDo_SuccessEnvelopeWithoutFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []int{1, 2})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	body, err := a.Do(context.Background(), Request{Path: "/x"})
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(body))
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080/api/v1", "http://localhost:8080/api/v1", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/api/v1/", "http://localhost:8080/api/v1", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, logger.Nop())
	assert.Error(t, err)
}
