// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/homesite/internal/render"
	"github.com/olegiv/homesite/internal/store"
)

// AdminHandler handles the admin menu and the user and message panels.
type AdminHandler struct {
	queries     *store.Queries
	renderer    *render.Renderer
	basePath    string
	debugErrors bool
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer, basePath string, debugErrors bool) *AdminHandler {
	return &AdminHandler{
		queries:     store.New(db),
		renderer:    renderer,
		basePath:    basePath,
		debugErrors: debugErrors,
	}
}

// Menu handles GET /admin - the static menu of the three sub-panels.
func (h *AdminHandler) Menu(w http.ResponseWriter, _ *http.Request) {
	h.renderer.Render(w, http.StatusOK, "admin_menu", "Admin", nil)
}

// UsersListData holds data for the users list template.
type UsersListData struct {
	Users []store.User
}

// Users handles GET /admin/users - all users ordered by username.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "listing users failed", err,
			joinBase(h.basePath, RouteAdmin), "Back to admin")
		return
	}
	h.renderer.Render(w, http.StatusOK, "admin_users", "Users", UsersListData{Users: users})
}

// setRole is the shared implementation of the promote and demote endpoints.
// A missing username, like a username matching no row, redirects back to
// the users list without change.
func (h *AdminHandler) setRole(w http.ResponseWriter, r *http.Request, role string) {
	usersURL := joinBase(h.basePath, RouteAdminUsers)

	username := r.URL.Query().Get("username")
	if username == "" {
		http.Redirect(w, r, usersURL, http.StatusFound)
		return
	}

	if err := h.queries.UpdateUserRole(r.Context(), store.UpdateUserRoleParams{
		Role:     role,
		Username: username,
	}); err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "updating user role failed", err,
			usersURL, "Back to users")
		return
	}

	slog.Info("user role updated", "username", username, "role", role)
	http.Redirect(w, r, usersURL, http.StatusFound)
}

// MakeAdmin handles GET /admin/make-admin?username=<u>.
func (h *AdminHandler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, store.RoleAdmin)
}

// RemoveAdmin handles GET /admin/remove-admin?username=<u>.
func (h *AdminHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, store.RoleUser)
}

// DeleteUser handles GET /admin/delete-user?username=<u>. Admin rows are
// refused with 403 and must be demoted first; the role lookup and the
// delete are two separate statements, so a concurrent role change between
// them can slip through.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	usersURL := joinBase(h.basePath, RouteAdminUsers)

	username := r.URL.Query().Get("username")
	if username == "" {
		http.Redirect(w, r, usersURL, http.StatusFound)
		return
	}

	user, err := h.queries.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Redirect(w, r, usersURL, http.StatusFound)
			return
		}
		storeErrorPage(w, h.renderer, h.debugErrors, "user lookup failed", err,
			usersURL, "Back to users")
		return
	}

	if user.IsAdmin() {
		renderMessage(w, h.renderer, http.StatusForbidden, messageData{
			Heading:  "Admin accounts cannot be deleted.",
			Detail:   "Demote the account to a regular user first, then delete it.",
			LinkURL:  usersURL,
			LinkText: "Back to users",
		})
		return
	}

	if err := h.queries.DeleteUserByUsername(r.Context(), username); err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "deleting user failed", err,
			usersURL, "Back to users")
		return
	}

	slog.Info("user deleted", "username", username)
	http.Redirect(w, r, usersURL, http.StatusFound)
}

// MessagesListData holds data for the messages list template.
type MessagesListData struct {
	Messages []store.Message
}

// Messages handles GET /admin/messages - contact messages, newest first.
func (h *AdminHandler) Messages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.queries.ListMessages(r.Context())
	if err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "listing messages failed", err,
			joinBase(h.basePath, RouteAdmin), "Back to admin")
		return
	}
	h.renderer.Render(w, http.StatusOK, "admin_messages", "Contact messages", MessagesListData{Messages: msgs})
}

// DeleteMessage handles GET /admin/delete-message?id=<id>. A missing or
// unmatched id redirects back without error.
func (h *AdminHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	messagesURL := joinBase(h.basePath, RouteAdminMessages)

	id, ok := parseID(r)
	if !ok {
		http.Redirect(w, r, messagesURL, http.StatusFound)
		return
	}

	if err := h.queries.DeleteMessage(r.Context(), id); err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "deleting message failed", err,
			messagesURL, "Back to messages")
		return
	}

	slog.Info("contact message deleted", "message_id", id)
	http.Redirect(w, r, messagesURL, http.StatusFound)
}
