// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the route handlers for every endpoint the site
// serves: public pages, the auth flow, the dashboard and the admin panel.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// mimeTypes maps asset extensions to content types for /public/* files.
// Anything else is served as an opaque byte stream.
var mimeTypes = map[string]string{
	".css": "text/css",
	".js":  "application/javascript",
}

// PagesHandler serves page files and static assets from the web directory.
type PagesHandler struct {
	webDir string
}

// NewPagesHandler creates a PagesHandler rooted at webDir.
func NewPagesHandler(webDir string) *PagesHandler {
	return &PagesHandler{webDir: webDir}
}

// serveFile streams a file below the web directory with the given content
// type. A read failure is a 500 naming the requested path.
func (h *PagesHandler) serveFile(w http.ResponseWriter, relPath, contentType string) {
	clean := path.Clean("/" + relPath)
	data, err := os.ReadFile(filepath.Join(h.webDir, filepath.FromSlash(clean)))
	if err != nil {
		slog.Error("file read failed", "path", relPath, "error", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprintf(w, "server error, file not readable: %s", relPath)
		return
	}
	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Home handles GET / and GET /index.html.
func (h *PagesHandler) Home(w http.ResponseWriter, _ *http.Request) {
	h.serveFile(w, "views/index.html", "text/html")
}

// About handles GET /about-us.
func (h *PagesHandler) About(w http.ResponseWriter, _ *http.Request) {
	h.serveFile(w, "views/about-us.html", "text/html")
}

// LoginForm handles GET /login.
func (h *PagesHandler) LoginForm(w http.ResponseWriter, _ *http.Request) {
	h.serveFile(w, "views/login.html", "text/html")
}

// RegisterForm handles GET /register.
func (h *PagesHandler) RegisterForm(w http.ResponseWriter, _ *http.Request) {
	h.serveFile(w, "views/register.html", "text/html")
}

// ContactForm handles GET /contact.
func (h *PagesHandler) ContactForm(w http.ResponseWriter, _ *http.Request) {
	h.serveFile(w, "views/contact.html", "text/html")
}

// Public handles GET /public/*, resolving the content type by extension.
func (h *PagesHandler) Public(w http.ResponseWriter, r *http.Request) {
	relPath := strings.TrimPrefix(r.URL.Path, "/")
	ct, ok := mimeTypes[path.Ext(relPath)]
	if !ok {
		ct = "application/octet-stream"
	}
	h.serveFile(w, relPath, ct)
}

// Script handles GET *.js for script paths outside /public, e.g.
// /src/systempage/menu.js.
func (h *PagesHandler) Script(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, strings.TrimPrefix(r.URL.Path, "/"), "application/javascript")
}

// Favicon handles GET /favicon.ico with an empty 204 so browsers stop asking.
func (h *PagesHandler) Favicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
