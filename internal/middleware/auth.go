// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization and response headers.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/homesite/internal/session"
)

// Guard gates handlers behind the cookie-carried session state.
type Guard struct {
	// LoginURL is the redirect target for rejected requests,
	// already prefixed with the base path.
	LoginURL string
}

// RequireLogin wraps a handler so that requests without a valid login
// marker are redirected (302) to the login page.
func (g Guard) RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !session.FromRequest(r).LoggedIn() {
			http.Redirect(w, r, g.LoginURL, http.StatusFound)
			return
		}
		next(w, r)
	}
}

// RequireAdmin wraps a handler so that requests without a valid login
// marker or without the admin role are redirected (302) to the login page.
// Authenticated non-admins are sent to the login page too, not to a
// forbidden page; that matches the deployed site.
func (g Guard) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session.FromRequest(r)
		if !s.LoggedIn() {
			http.Redirect(w, r, g.LoginURL, http.StatusFound)
			return
		}
		if !s.IsAdmin() {
			slog.Warn("admin access denied",
				"method", r.Method,
				"path", r.URL.Path,
				"role", s.Role,
				"remote_addr", r.RemoteAddr,
			)
			http.Redirect(w, r, g.LoginURL, http.StatusFound)
			return
		}
		next(w, r)
	}
}
