// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/olegiv/homesite/internal/store"
)

// addUser inserts a user directly, bypassing the registration endpoint.
func addUser(t *testing.T, db *sql.DB, username, role string) {
	t.Helper()
	_, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Username: username,
		Email:    username + "@x.com",
		Password: "pw",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
}

func TestAdminGating(t *testing.T) {
	s := newSite(t, "", false)

	adminPages := []string{"/admin", "/admin/users", "/admin/messages", "/admin/posts"}

	for _, p := range adminPages {
		rec := s.get(p, "")
		wantRedirect(t, rec, "/login")
	}

	// A logged-in regular user is bounced the same way.
	for _, p := range adminPages {
		rec := s.get(p, userCookies)
		wantRedirect(t, rec, "/login")
	}

	for _, p := range adminPages {
		rec := s.get(p, adminCookies)
		wantStatus(t, rec, http.StatusOK)
	}
}

func TestDashboardGating(t *testing.T) {
	s := newSite(t, "", false)

	wantRedirect(t, s.get("/dashboard", ""), "/login")

	// A forged or wrong token is as good as no session.
	wantRedirect(t, s.get("/dashboard", "authToken=forged; userRole=user; username=bob"), "/login")

	wantStatus(t, s.get("/dashboard", userCookies), http.StatusOK)
}

func TestAdminUserLifecycle(t *testing.T) {
	s := newSite(t, "", false)
	addUser(t, s.db, "bob", store.RoleUser)
	q := store.New(s.db)

	rec := s.get("/admin/make-admin?username=bob", adminCookies)
	wantRedirect(t, rec, "/admin/users")
	u, err := q.GetUserByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatal(err)
	}
	if !u.IsAdmin() {
		t.Fatal("bob should be admin after promotion")
	}

	rec = s.get("/admin/remove-admin?username=bob", adminCookies)
	wantRedirect(t, rec, "/admin/users")
	u, err = q.GetUserByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatal(err)
	}
	if u.IsAdmin() {
		t.Fatal("bob should be demoted")
	}

	rec = s.get("/admin/delete-user?username=bob", adminCookies)
	wantRedirect(t, rec, "/admin/users")
	if _, err := q.GetUserByUsername(context.Background(), "bob"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("bob should be gone, got %v", err)
	}
}

func TestAdminUserCannotBeDeleted(t *testing.T) {
	s := newSite(t, "", false)
	addUser(t, s.db, "root", store.RoleAdmin)

	rec := s.get("/admin/delete-user?username=root", adminCookies)
	wantStatus(t, rec, http.StatusForbidden)
	wantBodyContains(t, rec, "Admin accounts cannot be deleted.")

	// The row survives the refused delete.
	if _, err := store.New(s.db).GetUserByUsername(context.Background(), "root"); err != nil {
		t.Fatalf("admin row should survive: %v", err)
	}
}

func TestDeleteUserMissingOrUnknown(t *testing.T) {
	s := newSite(t, "", false)

	wantRedirect(t, s.get("/admin/delete-user", adminCookies), "/admin/users")
	wantRedirect(t, s.get("/admin/delete-user?username=ghost", adminCookies), "/admin/users")
}

func TestAdminMessagesPanel(t *testing.T) {
	s := newSite(t, "", false)
	q := store.New(s.db)

	id, err := q.CreateMessage(context.Background(), store.CreateMessageParams{
		Name:      "visitor",
		Email:     "v@x.com",
		Message:   "hello there",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := s.get("/admin/messages", adminCookies)
	wantStatus(t, rec, http.StatusOK)
	wantBodyContains(t, rec, "hello there")

	// Missing and malformed ids are a silent redirect, nothing is deleted.
	wantRedirect(t, s.get("/admin/delete-message", adminCookies), "/admin/messages")
	wantRedirect(t, s.get("/admin/delete-message?id=abc", adminCookies), "/admin/messages")
	n, err := q.CountMessages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("message count = %d, want 1", n)
	}

	wantRedirect(t, s.get("/admin/delete-message?id="+strconv.FormatInt(id, 10), adminCookies), "/admin/messages")
	n, err = q.CountMessages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("message count = %d, want 0", n)
	}
}

func TestContactSubmit(t *testing.T) {
	s := newSite(t, "", false)

	rec := s.postForm("/contact", url.Values{
		"name":    {"visitor"},
		"email":   {"v@x.com"},
		"message": {"hi"},
	}, "")
	wantStatus(t, rec, http.StatusOK)

	n, err := store.New(s.db).CountMessages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("message count = %d, want 1", n)
	}
}
