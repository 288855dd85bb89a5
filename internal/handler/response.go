// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/olegiv/homesite/internal/render"
)

// messageData feeds the generic heading/detail/link page template.
type messageData struct {
	Heading  string
	Detail   string
	LinkURL  string
	LinkText string
}

// renderMessage renders the generic message page with the given status.
func renderMessage(w http.ResponseWriter, r *render.Renderer, status int, data messageData) {
	r.Render(w, status, "message", data.Heading, data)
}

// storeErrorPage logs a store failure and renders a 500 page. The raw error
// text is embedded only when debug detail is enabled; the taxonomy
// (status, page shape, link) is identical either way.
func storeErrorPage(w http.ResponseWriter, rd *render.Renderer, debug bool, logMsg string, err error, backURL, backText string) {
	slog.Error(logMsg, "error", err)
	data := messageData{
		Heading:  "Something went wrong.",
		LinkURL:  backURL,
		LinkText: backText,
	}
	if debug {
		data.Detail = err.Error()
	}
	renderMessage(w, rd, http.StatusInternalServerError, data)
}

// parseID reads a positive integer "id" query parameter. A missing,
// empty or malformed value reports false, which callers treat the same as
// a missing identifier.
func parseID(r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// joinBase prefixes a base-relative path with the configured base path.
func joinBase(basePath, path string) string {
	if basePath == "" {
		return path
	}
	return basePath + path
}
