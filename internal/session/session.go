// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session implements the cookie-carried session state. There is no
// server-side session store: the three cookies below are the whole session,
// set on login and cleared on logout, and are trusted as the client sent
// them. This mirrors the deployed site's trust model and is required for
// behavioral compatibility with it.
package session

import (
	"net/http"
	"net/url"
	"strings"
)

// Cookie names making up the session.
const (
	CookieAuthToken = "authToken"
	CookieUserRole  = "userRole"
	CookieUsername  = "username"
)

// TokenLoggedIn is the only authToken value that marks a session as valid.
const TokenLoggedIn = "loggedin"

// RoleAdmin is the userRole value granting admin access.
const RoleAdmin = "admin"

// Session is the caller's state as reconstructed from request cookies.
type Session struct {
	Token    string
	Role     string
	Username string // still percent-encoded; use DecodedUsername
}

// LoggedIn reports whether the caller presented a valid login marker.
func (s Session) LoggedIn() bool {
	return s.Token == TokenLoggedIn
}

// IsAdmin reports whether the caller presented the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// DecodedUsername returns the percent-decoded username cookie value.
// Returns empty string if the cookie is absent or malformed.
func (s Session) DecodedUsername() string {
	name, err := url.QueryUnescape(s.Username)
	if err != nil {
		return ""
	}
	return name
}

// ParseCookieHeader parses a raw Cookie header into a name → value map.
// Pairs are split on ';', each pair on the first '=', and both sides are
// trimmed. A duplicated name keeps the last value. A missing or empty
// header yields an empty map.
//
// http.Request.Cookie is deliberately not used here: it returns the first
// duplicate, while the deployed site's parser kept the last one.
func ParseCookieHeader(header string) map[string]string {
	cookies := make(map[string]string)
	if header == "" {
		return cookies
	}
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		cookies[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return cookies
}

// FromRequest reconstructs the session from the request's Cookie header.
func FromRequest(r *http.Request) Session {
	cookies := ParseCookieHeader(r.Header.Get("Cookie"))
	return Session{
		Token:    cookies[CookieAuthToken],
		Role:     cookies[CookieUserRole],
		Username: cookies[CookieUsername],
	}
}

// Set writes the three session cookies for a successful login. All are
// scoped to Path=/ and carry no expiry, HttpOnly, Secure or SameSite
// attributes, matching the deployed site.
func Set(w http.ResponseWriter, username, role string) {
	http.SetCookie(w, &http.Cookie{Name: CookieAuthToken, Value: TokenLoggedIn, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: CookieUserRole, Value: role, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: CookieUsername, Value: url.QueryEscape(username), Path: "/"})
}

// Clear expires all three session cookies (Max-Age=0). Always safe to call,
// logged in or not.
func Clear(w http.ResponseWriter) {
	for _, name := range []string{CookieAuthToken, CookieUserRole, CookieUsername} {
		http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1})
	}
}
