// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/homesite/internal/render"
	"github.com/olegiv/homesite/internal/store"
)

// ContactHandler handles the public contact form.
type ContactHandler struct {
	queries     *store.Queries
	renderer    *render.Renderer
	basePath    string
	debugErrors bool
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(db *sql.DB, renderer *render.Renderer, basePath string, debugErrors bool) *ContactHandler {
	return &ContactHandler{
		queries:     store.New(db),
		renderer:    renderer,
		basePath:    basePath,
		debugErrors: debugErrors,
	}
}

// Submit handles POST /contact. Fields are accepted as-is, empty included;
// the timestamp is assigned server-side.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "contact form parse failed", err,
			joinBase(h.basePath, RouteContact), "Back to contact")
		return
	}

	id, err := h.queries.CreateMessage(r.Context(), store.CreateMessageParams{
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
		Message:   r.PostFormValue("message"),
		CreatedAt: time.Now(),
	})
	if err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "saving contact message failed", err,
			joinBase(h.basePath, RouteContact), "Back to contact")
		return
	}

	slog.Info("contact message received", "message_id", id)

	renderMessage(w, h.renderer, http.StatusOK, messageData{
		Heading:  "Thanks, your message has been received.",
		LinkURL:  joinBase(h.basePath, RouteRoot),
		LinkText: "Back to the homepage",
	})
}
