// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/sim-sekolah/internal/adapter"
	"github.com/MKhiriev/sim-sekolah/internal/app"
	"github.com/MKhiriev/sim-sekolah/internal/logger"
	"github.com/MKhiriev/sim-sekolah/internal/rbac"
	"github.com/MKhiriev/sim-sekolah/internal/store"
	"github.com/MKhiriev/sim-sekolah/internal/utils"
	"github.com/MKhiriev/sim-sekolah/internal/validators"
	"github.com/MKhiriev/sim-sekolah/models"
)

var sessionKeys = []string{models.SessionKeyToken, models.SessionKeyUser}

// loginShape is one place a backend may put the token and the user in the
// login response.
type loginShape struct {
	token []string
	user  []string
}

// loginResponseShapes are tried in order; the first one carrying both a
// non-empty token and a user object wins.
var loginResponseShapes = []loginShape{
	{token: []string{"data", "token"}, user: []string{"data", "user"}},
	{token: []string{"token"}, user: []string{"user"}},
	{token: []string{"data", "access_token"}, user: []string{"data", "user"}},
}

type clientSessionService struct {
	repo      store.SessionRepository
	adapter   adapter.ServerAdapter
	validator validators.Validator
	now       func() time.Time
	ids       *utils.UUIDGenerator

	restoreMu sync.Mutex
	restored  atomic.Bool

	mu        sync.RWMutex
	session   models.Session
	listeners []func(SessionEndReason)

	logger *logger.Logger
}

// NewClientSessionService builds the session store over repo. The adapter's
// bearer token follows the session.
func NewClientSessionService(repo store.SessionRepository, serverAdapter adapter.ServerAdapter, validator validators.Validator, logger *logger.Logger) ClientSessionService {
	return &clientSessionService{
		repo:      repo,
		adapter:   serverAdapter,
		validator: validator,
		now:       time.Now,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

func (s *clientSessionService) Restore(ctx context.Context) error {
	s.restoreMu.Lock()
	defer s.restoreMu.Unlock()

	if s.restored.Load() {
		return nil
	}
	defer s.restored.Store(true)

	token, err := s.repo.Get(ctx, models.SessionKeyToken)
	if errors.Is(err, store.ErrKeyNotFound) {
		if _, userErr := s.repo.Get(ctx, models.SessionKeyUser); userErr == nil {
			s.discardStored(ctx, "stored user has no token")
			return nil
		}
		s.logger.Debug().Str("func", "clientSessionService.Restore").Msg("no stored session")
		return nil
	}
	if errors.Is(err, store.ErrReadingSessionFile) {
		s.discardStored(ctx, "session file is unreadable")
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session token: %w", err)
	}

	rawUser, err := s.repo.Get(ctx, models.SessionKeyUser)
	if errors.Is(err, store.ErrKeyNotFound) {
		s.discardStored(ctx, "stored token has no user")
		return nil
	}
	if errors.Is(err, store.ErrReadingSessionFile) {
		s.discardStored(ctx, "session file is unreadable")
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session user: %w", err)
	}

	principal, err := decodePrincipal([]byte(rawUser))
	if err != nil || strings.TrimSpace(token) == "" {
		s.discardStored(ctx, "stored session is corrupt")
		return nil
	}

	s.mu.Lock()
	s.session = models.Session{Token: token, Principal: principal, RawUser: json.RawMessage(rawUser)}
	s.mu.Unlock()
	s.adapter.SetToken(token)

	s.logger.Info().
		Str("func", "clientSessionService.Restore").
		Str("user_id", principal.ID.String()).
		Msg("session restored")
	return nil
}

// discardStored drops a partial or unreadable persisted session. The
// process starts signed out and the user sees no error.
func (s *clientSessionService) discardStored(ctx context.Context, reason string) {
	s.logger.Warn().
		Str("func", "clientSessionService.Restore").
		Str("reason", reason).
		Msg("purging stored session")
	if err := s.repo.Delete(ctx, sessionKeys...); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.Restore").Msg("failed to purge stored session")
	}
}

func (s *clientSessionService) Restored() bool {
	return s.restored.Load()
}

func (s *clientSessionService) Login(ctx context.Context, identifier, secret string) error {
	traceID, ok := utils.GetTraceIDFromContext(ctx)
	if !ok {
		traceID = s.ids.Generate()
		ctx = utils.WithTraceID(ctx, traceID)
	}
	req := models.LoginRequest{Email: strings.TrimSpace(identifier), Password: secret}

	if err := s.validator.Validate(ctx, req); err != nil {
		s.purge(ctx)
		msg := app.MsgLoginFailed
		var verr *validators.ValidationError
		if errors.As(err, &verr) && verr.First() != "" {
			msg = verr.First()
		}
		return &AuthError{Kind: AuthErrInvalidInput, Message: msg, Err: err}
	}

	body, err := s.adapter.Login(ctx, req)
	if err != nil {
		s.purge(ctx)
		s.logger.Err(err).Str("func", "clientSessionService.Login").Str("trace_id", traceID).Msg("login request failed")
		return &AuthError{Kind: AuthErrTransport, Message: loginErrorMessage(err), Err: mapAdapterError(err)}
	}

	token, rawUser, err := extractLogin(body)
	if err != nil {
		s.purge(ctx)
		s.logger.Warn().Str("func", "clientSessionService.Login").Str("trace_id", traceID).Msg("login response has no token or user")
		return &AuthError{Kind: AuthErrMalformedResponse, Message: app.MsgTokenNotInResponse, Err: err}
	}

	principal, err := decodePrincipal(rawUser)
	if err != nil {
		s.purge(ctx)
		return &AuthError{Kind: AuthErrMalformedResponse, Message: app.MsgTokenNotInResponse, Err: err}
	}

	err = s.repo.Put(ctx, map[string]string{
		models.SessionKeyToken: token,
		models.SessionKeyUser:  string(rawUser),
	})
	if err != nil {
		s.purge(ctx)
		s.logger.Err(err).Str("func", "clientSessionService.Login").Str("trace_id", traceID).Msg("failed to persist session")
		return &AuthError{Kind: AuthErrPersist, Message: app.MsgSessionNotSaved, Err: err}
	}

	s.mu.Lock()
	s.session = models.Session{Token: token, Principal: principal, RawUser: rawUser}
	s.mu.Unlock()
	s.adapter.SetToken(token)

	s.logger.Info().
		Str("func", "clientSessionService.Login").
		Str("trace_id", traceID).
		Str("user_id", principal.ID.String()).
		Str("role", string(rbac.ExtractRole(principal))).
		Msg("logged in")
	return nil
}

// loginErrorMessage picks what the login form shows: the server's message,
// else the transport error text, else a generic failure.
func loginErrorMessage(err error) string {
	if msg := adapter.ServerMessage(err); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return app.MsgLoginFailed
}

func (s *clientSessionService) Logout(ctx context.Context) error {
	err := s.purge(ctx)
	s.logger.Info().Str("func", "clientSessionService.Logout").Msg("logged out")
	s.notify(SessionLoggedOut)
	return err
}

func (s *clientSessionService) Expire(ctx context.Context) {
	s.mu.RLock()
	active := s.session.Valid()
	s.mu.RUnlock()

	_ = s.purge(ctx)
	if !active {
		return
	}

	s.logger.Warn().Str("func", "clientSessionService.Expire").Msg("session expired")
	s.notify(SessionExpired)
}

func (s *clientSessionService) Check(ctx context.Context) bool {
	s.mu.RLock()
	sess := s.session
	s.mu.RUnlock()

	if !sess.Valid() {
		return false
	}

	if !s.IsAuthenticated(ctx) {
		s.logger.Info().Str("func", "clientSessionService.Check").Msg("session keys vanished from storage")
		s.Expire(ctx)
		return true
	}

	// opaque tokens have no client-side expiry
	if token, err := utils.ParseToken(sess.Token); err == nil && token.Expired(s.now()) {
		exp, _ := token.ExpiresAtTime()
		s.logger.Info().
			Str("func", "clientSessionService.Check").
			Time("expires_at", exp).
			Msg("token expired")
		s.Expire(ctx)
		return true
	}

	return false
}

func (s *clientSessionService) Refresh(ctx context.Context) error {
	s.mu.RLock()
	token := s.session.Token
	s.mu.RUnlock()
	if token == "" {
		return ErrNotAuthenticated
	}

	body, err := s.adapter.Me(ctx)
	if err != nil {
		return fmt.Errorf("refresh user: %w", mapAdapterError(err))
	}

	var resp models.APIResponse[json.RawMessage]
	if err = json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	principal, err := decodePrincipal(resp.Data)
	if err != nil {
		return err
	}

	if err = s.repo.Put(ctx, map[string]string{models.SessionKeyUser: string(resp.Data)}); err != nil {
		return fmt.Errorf("persist refreshed user: %w", err)
	}

	s.mu.Lock()
	if s.session.Token == token {
		s.session.Principal = principal
		s.session.RawUser = resp.Data
	}
	s.mu.Unlock()

	return nil
}

func (s *clientSessionService) IsAuthenticated(ctx context.Context) bool {
	s.mu.RLock()
	valid := s.session.Valid()
	s.mu.RUnlock()
	if !valid {
		return false
	}

	for _, key := range sessionKeys {
		v, err := s.repo.Get(ctx, key)
		if err != nil || v == "" {
			return false
		}
	}
	return true
}

func (s *clientSessionService) Principal() *models.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Principal
}

func (s *clientSessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *clientSessionService) Role() models.CanonicalRole {
	return rbac.ExtractRole(s.Principal())
}

func (s *clientSessionService) OnSessionEnd(fn func(SessionEndReason)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *clientSessionService) notify(reason SessionEndReason) {
	s.mu.RLock()
	listeners := make([]func(SessionEndReason), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(reason)
	}
}

// purge clears memory, the adapter token and both persisted keys.
func (s *clientSessionService) purge(ctx context.Context) error {
	s.mu.Lock()
	s.session = models.Session{}
	s.mu.Unlock()
	s.adapter.SetToken("")

	if err := s.repo.Delete(ctx, sessionKeys...); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.purge").Msg("failed to delete session keys")
		return fmt.Errorf("purge session: %w", err)
	}
	return nil
}

// extractLogin walks loginResponseShapes over body.
func extractLogin(body []byte) (string, json.RawMessage, error) {
	for _, shape := range loginResponseShapes {
		rawToken, ok := lookupJSON(body, shape.token)
		if !ok {
			continue
		}
		var token string
		if err := json.Unmarshal(rawToken, &token); err != nil || strings.TrimSpace(token) == "" {
			continue
		}

		rawUser, ok := lookupJSON(body, shape.user)
		if !ok || !isJSONObject(rawUser) {
			continue
		}
		return strings.TrimSpace(token), rawUser, nil
	}
	return "", nil, ErrMalformedResponse
}

func lookupJSON(body []byte, path []string) (json.RawMessage, bool) {
	cur := json.RawMessage(body)
	for _, key := range path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(cur, &obj); err != nil {
			return nil, false
		}
		next, ok := obj[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func isJSONObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func decodePrincipal(raw []byte) (*models.Principal, error) {
	if !isJSONObject(raw) {
		return nil, fmt.Errorf("%w: user is not an object", ErrMalformedResponse)
	}
	var p models.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &p, nil
}
