// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package router implements an ordered first-match-wins route table.
//
// Route precedence is the registration order, never a sort or a trie:
// overlapping matchers (an exact "/admin/posts" next to a prefix
// "/admin/update-post") must resolve exactly as registered, so the table
// is walked top to bottom and the first (method, matcher) hit wins.
package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type matchKind int

const (
	matchExact matchKind = iota
	matchPrefix
	matchSuffix
)

type route struct {
	method  string
	kind    matchKind
	pattern string
	handler http.HandlerFunc
}

// Router dispatches requests against an ordered route table.
type Router struct {
	basePath string
	routes   []route
}

// New creates a Router. basePath, when non-empty, is stripped from every
// incoming path before matching (reverse-proxy sub-path deployment).
func New(basePath string) *Router {
	return &Router{basePath: basePath}
}

// Get registers an exact-match GET route.
func (rt *Router) Get(path string, h http.HandlerFunc) {
	rt.routes = append(rt.routes, route{http.MethodGet, matchExact, path, h})
}

// Post registers an exact-match POST route.
func (rt *Router) Post(path string, h http.HandlerFunc) {
	rt.routes = append(rt.routes, route{http.MethodPost, matchExact, path, h})
}

// GetPrefix registers a GET route matching any path with the given prefix.
func (rt *Router) GetPrefix(prefix string, h http.HandlerFunc) {
	rt.routes = append(rt.routes, route{http.MethodGet, matchPrefix, prefix, h})
}

// PostPrefix registers a POST route matching any path with the given prefix.
func (rt *Router) PostPrefix(prefix string, h http.HandlerFunc) {
	rt.routes = append(rt.routes, route{http.MethodPost, matchPrefix, prefix, h})
}

// GetSuffix registers a GET route matching any path with the given suffix.
func (rt *Router) GetSuffix(suffix string, h http.HandlerFunc) {
	rt.routes = append(rt.routes, route{http.MethodGet, matchSuffix, suffix, h})
}

// ServeHTTP strips the base path, walks the table in order and dispatches
// the first match. Unmatched GET/POST paths get a plain-text 404 naming the
// path; any other method gets a 405 before matching.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = fmt.Fprint(w, "405 - method not allowed")
		return
	}

	path := r.URL.Path
	if rt.basePath != "" {
		path = strings.TrimPrefix(path, rt.basePath)
	}
	if path == "" {
		path = "/"
	}

	for _, rte := range rt.routes {
		if rte.method != r.Method {
			continue
		}
		var ok bool
		switch rte.kind {
		case matchExact:
			ok = path == rte.pattern
		case matchPrefix:
			ok = strings.HasPrefix(path, rte.pattern)
		case matchSuffix:
			ok = strings.HasSuffix(path, rte.pattern)
		}
		if ok {
			// Handlers see the base-relative path, like http.StripPrefix.
			r2 := new(http.Request)
			*r2 = *r
			r2.URL = new(url.URL)
			*r2.URL = *r.URL
			r2.URL.Path = path
			rte.handler(w, r2)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = fmt.Fprintf(w, "404 - no such resource: %s", path)
}
