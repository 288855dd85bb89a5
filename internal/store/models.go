// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered site user.
type User struct {
	ID       int64
	Username string
	Email    string
	Password string // stored verbatim, compared verbatim on login
	Role     string
}

// IsAdmin returns true if the user has admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Message is a contact form submission.
type Message struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

// Post is a news post managed through the admin panel.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Author    sql.NullString
	CreatedAt sql.NullTime
}

// Event is a persisted log record mirrored from the application logger.
type Event struct {
	ID        int64
	Level     string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// DashboardStats is the single aggregate row backing the dashboard page.
type DashboardStats struct {
	UserCount    int64
	LatestUser   sql.NullString
	MessageCount int64
	LatestPost   sql.NullString
}
