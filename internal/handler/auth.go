// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/homesite/internal/render"
	"github.com/olegiv/homesite/internal/session"
	"github.com/olegiv/homesite/internal/store"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	queries     *store.Queries
	renderer    *render.Renderer
	basePath    string
	debugErrors bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, basePath string, debugErrors bool) *AuthHandler {
	return &AuthHandler{
		queries:     store.New(db),
		renderer:    renderer,
		basePath:    basePath,
		debugErrors: debugErrors,
	}
}

// Register handles POST /register. The role is always defaulted server-side
// to "user"; a store failure (including a username/email uniqueness
// violation) renders the 500 error page.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "register form parse failed", err,
			joinBase(h.basePath, RouteRegister), "Back to registration")
		return
	}

	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username: username,
		Email:    email,
		Password: password,
		Role:     store.RoleUser,
	})
	if err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "user registration failed", err,
			joinBase(h.basePath, RouteRegister), "Back to registration")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	renderMessage(w, h.renderer, http.StatusOK, messageData{
		Heading:  "Registration saved.",
		Detail:   "Welcome, " + user.Username + "!",
		LinkURL:  joinBase(h.basePath, RouteLogin),
		LinkText: "Continue to login",
	})
}

// Login handles POST /login. Credentials are matched with a plain equality
// lookup; a match sets the three session cookies and redirects to the
// dashboard, anything else is a 401 page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "login form parse failed", err,
			joinBase(h.basePath, RouteLogin), "Back to login")
		return
	}

	user, err := h.queries.GetUserByCredentials(r.Context(), store.GetUserByCredentialsParams{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			renderMessage(w, h.renderer, http.StatusUnauthorized, messageData{
				Heading:  "Invalid username or password.",
				LinkURL:  joinBase(h.basePath, RouteLogin),
				LinkText: "Back to login",
			})
			return
		}
		storeErrorPage(w, h.renderer, h.debugErrors, "login lookup failed", err,
			joinBase(h.basePath, RouteLogin), "Back to login")
		return
	}

	session.Set(w, user.Username, user.Role)
	slog.Info("user logged in", "user_id", user.ID, "username", user.Username, "role", user.Role)
	http.Redirect(w, r, joinBase(h.basePath, RouteDashboard), http.StatusFound)
}

// Logout handles GET /logout. Clears the session cookies regardless of
// whether a session was present and redirects home.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	http.Redirect(w, r, joinBase(h.basePath, RouteRoot), http.StatusFound)
}
