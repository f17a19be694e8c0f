// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/sim-sekolah/internal/config"
	"github.com/MKhiriev/sim-sekolah/internal/logger"
	"github.com/MKhiriev/sim-sekolah/internal/utils"
	"github.com/MKhiriev/sim-sekolah/models"
	"github.com/go-resty/resty/v2"
)

const (
	loginPath = "/auth/login"
	mePath    = "/auth/me"

	traceHeader = "X-Trace-ID"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	ids    *utils.UUIDGenerator
	// loginURLPath is loginPath under the base URL path, e.g. /api/auth/login.
	loginURLPath string

	mu             sync.RWMutex
	token          string
	onUnauthorized func()

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises the base URL from adapterCfg.BaseURL and installs the
// request hooks: every request gets an X-Trace-ID, and a 401 on any path
// other than the login endpoint invokes the unauthorized handler.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	h := &httpServerAdapter{
		client:       utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		ids:          utils.NewUUIDGenerator(),
		loginURLPath: strings.TrimRight(base.Path, "/") + loginPath,
		logger:       logger,
	}

	h.client.OnBeforeRequest(h.traceRequest)
	h.client.OnAfterResponse(h.checkUnauthorized)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SetUnauthorizedHandler implements [ServerAdapter].
func (h *httpServerAdapter) SetUnauthorizedHandler(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnauthorized = fn
}

// Login implements [ServerAdapter]. It POSTs {email, password} without a
// bearer token.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(loginPath)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return resp.Body(), err
	}

	return resp.Body(), nil
}

// Me implements [ServerAdapter].
func (h *httpServerAdapter) Me(ctx context.Context) ([]byte, error) {
	return h.Do(ctx, Request{Method: http.MethodGet, Path: mePath})
}

// Do implements [ServerAdapter].
func (h *httpServerAdapter) Do(ctx context.Context, req Request) ([]byte, error) {
	r := h.authedRequest(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	resp, err := r.Execute(method, req.Path)
	if err != nil {
		return nil, fmt.Errorf("%s %s request: %w", method, req.Path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", utils.BearerHeader(token))
	}
	return req
}

// traceRequest tags the request with the trace ID from its context, or a
// fresh one.
func (h *httpServerAdapter) traceRequest(_ *resty.Client, r *resty.Request) error {
	traceID, ok := utils.GetTraceIDFromContext(r.Context())
	if !ok {
		traceID = h.ids.Generate()
	}
	r.SetHeader(traceHeader, traceID)
	return nil
}

// checkUnauthorized runs the unauthorized handler for a 401 outside the
// login endpoint. Failed logins surface as inline errors instead.
func (h *httpServerAdapter) checkUnauthorized(_ *resty.Client, resp *resty.Response) error {
	path := resp.Request.URL
	h.logger.Debug().
		Str("func", "httpServerAdapter.checkUnauthorized").
		Str("trace_id", resp.Request.Header.Get(traceHeader)).
		Str("method", resp.Request.Method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Msg("api response")

	if resp.StatusCode() != http.StatusUnauthorized || h.isLoginURL(path) {
		return nil
	}

	h.mu.RLock()
	fn := h.onUnauthorized
	h.mu.RUnlock()

	if fn != nil {
		h.logger.Warn().
			Str("func", "httpServerAdapter.checkUnauthorized").
			Str("path", path).
			Msg("unauthorized response, expiring session")
		fn()
	}
	return nil
}

// isLoginURL reports whether rawURL points exactly at the login endpoint.
// Siblings such as /auth/login-history are ordinary authed paths.
func (h *httpServerAdapter) isLoginURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.TrimRight(u.Path, "/") == h.loginURLPath
}
