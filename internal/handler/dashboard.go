// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/olegiv/homesite/internal/render"
	"github.com/olegiv/homesite/internal/store"
)

// Placeholder text shown when an aggregate sub-query comes back empty.
const (
	noUsersYet = "no users yet"
	noPostsYet = "no posts yet"
)

// DashboardData holds data for the dashboard template.
type DashboardData struct {
	UserCount    int64
	LatestUser   string
	MessageCount int64
	LatestPost   string
}

// DashboardHandler handles the session-gated dashboard page.
type DashboardHandler struct {
	queries     *store.Queries
	renderer    *render.Renderer
	debugErrors bool
	basePath    string
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *sql.DB, renderer *render.Renderer, basePath string, debugErrors bool) *DashboardHandler {
	return &DashboardHandler{
		queries:     store.New(db),
		renderer:    renderer,
		basePath:    basePath,
		debugErrors: debugErrors,
	}
}

// Show handles GET /dashboard. One aggregate query backs the whole page.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.GetDashboardStats(r.Context())
	if err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "dashboard stats query failed", err,
			joinBase(h.basePath, RouteRoot), "Back to the homepage")
		return
	}

	data := DashboardData{
		UserCount:    stats.UserCount,
		LatestUser:   noUsersYet,
		MessageCount: stats.MessageCount,
		LatestPost:   noPostsYet,
	}
	if stats.LatestUser.Valid {
		data.LatestUser = stats.LatestUser.String
	}
	if stats.LatestPost.Valid {
		data.LatestPost = stats.LatestPost.String
	}

	h.renderer.Render(w, http.StatusOK, "dashboard", "Dashboard", data)
}
