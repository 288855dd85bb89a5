// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olegiv/homesite/internal/handler"
	"github.com/olegiv/homesite/internal/testutil"
)

// site bundles a routed handler with direct database access for assertions.
type site struct {
	handler http.Handler
	db      *sql.DB
	webDir  string
}

// viewFiles is the minimal on-disk site the pages handler expects.
var viewFiles = map[string]string{
	"views/index.html":         "<html><body>home page</body></html>",
	"views/about-us.html":      "<html><body>about page</body></html>",
	"views/login.html":         "<html><body>login form</body></html>",
	"views/register.html":      "<html><body>register form</body></html>",
	"views/contact.html":       "<html><body>contact form</body></html>",
	"public/style.css":         "body { margin: 0; }",
	"src/systempage/menu.js":   "// menu",
}

func newSite(t *testing.T, basePath string, debugErrors bool) *site {
	t.Helper()

	webDir := t.TempDir()
	for name, content := range viewFiles {
		full := filepath.Join(webDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	db := testutil.TestDB(t)
	return &site{
		handler: handler.Routes(handler.Config{
			DB:          db,
			Renderer:    testutil.TestRenderer(t, basePath),
			BasePath:    basePath,
			WebDir:      webDir,
			DebugErrors: debugErrors,
		}),
		db:     db,
		webDir: webDir,
	}
}

// get performs a GET with an optional raw Cookie header.
func (s *site) get(path, cookies string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookies != "" {
		req.Header.Set("Cookie", cookies)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// postForm performs a POST with a url-encoded body and optional Cookie header.
func (s *site) postForm(path string, form url.Values, cookies string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookies != "" {
		req.Header.Set("Cookie", cookies)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

const (
	adminCookies = "authToken=loggedin; userRole=admin; username=root"
	userCookies  = "authToken=loggedin; userRole=user; username=bob"
)

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func wantRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	wantStatus(t, rec, http.StatusFound)
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func wantBodyContains(t *testing.T, rec *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), substr) {
		t.Fatalf("body does not contain %q:\n%s", substr, rec.Body.String())
	}
}
