// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render wraps page content templates in the shared page shell.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// Renderer renders named page templates inside the base layout.
type Renderer struct {
	templates map[string]*template.Template
	basePath  string
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	BasePath    string
}

// shell is the data every template execution receives. Page templates
// reach their own data through .Data.
type shell struct {
	BasePath string
	Title    string
	Data     any
}

// New creates a Renderer with all page templates parsed against the base layout.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		basePath:  cfg.BasePath,
	}

	pages, err := fs.Glob(cfg.TemplatesFS, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing page templates: %w", err)
	}

	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")

		tmpl, err := template.New("").Funcs(funcs()).ParseFS(cfg.TemplatesFS, "layouts/base.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return r, nil
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"dateFormat": func(t time.Time, layout string) string {
			return t.Format(layout)
		},
	}
}

// Render executes the named page template inside the base layout and writes
// it with the given status. Execution is buffered so a template failure
// becomes a plain 500 instead of a torn page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name, title string, data any) {
	tmpl, ok := r.templates[name]
	if !ok {
		slog.Error("unknown template", "name", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "base", shell{
		BasePath: r.basePath,
		Title:    title,
		Data:     data,
	})
	if err != nil {
		slog.Error("template execution failed", "name", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
