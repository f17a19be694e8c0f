// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rbac

import (
	"context"
	"strings"

	"github.com/MKhiriev/sim-sekolah/models"
)

// Authenticator is the view of the session the guard needs.
type Authenticator interface {
	// IsAuthenticated reports whether a valid session exists right now.
	IsAuthenticated(ctx context.Context) bool
	// Principal returns the current principal or nil.
	Principal() *models.Principal
}

// CanEnter reports whether the session may view a screen requiring
// required. Unauthenticated sessions are always denied; an empty required
// set admits any authenticated principal.
func CanEnter(ctx context.Context, s Authenticator, required models.RoleSet) bool {
	if s == nil || !s.IsAuthenticated(ctx) {
		return false
	}
	if required.Empty() {
		return true
	}
	return required.Contains(ExtractRole(s.Principal()))
}

// Decision is the outcome of a navigation check.
type Decision struct {
	// Allowed is true when the target may be rendered.
	Allowed bool
	// Redirect is the path to go to instead when Allowed is false.
	Redirect string
	// Route is the matched route, zero when the path is unknown.
	Route models.Route
}

// Guard evaluates navigation requests against a route table. It keeps no
// state between calls: every navigation is evaluated against the session
// as it is at that moment.
type Guard struct {
	routes []models.Route
}

// NewGuard builds a guard over routes. A nil slice uses [DefaultRoutes].
func NewGuard(routes []models.Route) *Guard {
	if routes == nil {
		routes = DefaultRoutes()
	}
	return &Guard{routes: routes}
}

// Lookup finds the route serving path. Sub-paths ("/siswa/12") resolve to
// their longest registered prefix.
func (g *Guard) Lookup(path string) (models.Route, bool) {
	path = normalizePath(path)

	var (
		best  models.Route
		found bool
	)
	for _, r := range g.routes {
		if r.Path == path {
			return r, true
		}
		if strings.HasPrefix(path, r.Path+"/") && len(r.Path) > len(best.Path) {
			best, found = r, true
		}
	}
	return best, found
}

// Decide checks whether s may navigate to path.
//
// Unauthenticated sessions are sent to the login screen unless the route is
// public. Authenticated sessions asking for the login screen, an unknown
// path or a screen their role may not see are sent to the dashboard.
func (g *Guard) Decide(ctx context.Context, s Authenticator, path string) Decision {
	path = normalizePath(path)
	authenticated := s != nil && s.IsAuthenticated(ctx)

	if path == "/" {
		if authenticated {
			return Decision{Redirect: defaultLandingPath}
		}
		return Decision{Redirect: unauthenticatedTarget}
	}

	route, ok := g.Lookup(path)
	if !ok {
		if authenticated {
			return Decision{Redirect: defaultLandingPath}
		}
		return Decision{Redirect: unauthenticatedTarget}
	}

	if route.Public {
		if authenticated {
			return Decision{Redirect: defaultLandingPath, Route: route}
		}
		return Decision{Allowed: true, Route: route}
	}

	if !authenticated {
		return Decision{Redirect: unauthenticatedTarget, Route: route}
	}

	if !CanEnter(ctx, s, route.RequiredRoles) {
		return Decision{Redirect: defaultLandingPath, Route: route}
	}

	return Decision{Allowed: true, Route: route}
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
