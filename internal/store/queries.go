// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides database access for users, contact messages,
// news posts and the event log.
package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of *sql.DB and *sql.Tx the queries need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds prepared access to the store. Safe for concurrent use.
type Queries struct {
	db DBTX
}

// New creates a Queries instance backed by the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	Username string
	Email    string
	Password string
	Role     string
}

// CreateUser inserts a new user row and returns it with the assigned ID.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?)`,
		arg.Username, arg.Email, arg.Password, arg.Role)
	if err != nil {
		return User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}
	return User{ID: id, Username: arg.Username, Email: arg.Email, Password: arg.Password, Role: arg.Role}, nil
}

// GetUserByCredentialsParams holds the fields for GetUserByCredentials.
type GetUserByCredentialsParams struct {
	Username string
	Password string
}

// GetUserByCredentials returns the user matching both username and password
// exactly. Returns sql.ErrNoRows when no row matches.
func (q *Queries) GetUserByCredentials(ctx context.Context, arg GetUserByCredentialsParams) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, role FROM users WHERE username = ? AND password = ?`,
		arg.Username, arg.Password).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role)
	return u, err
}

// GetUserByUsername returns the user with the given username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx,
		`SELECT id, username, email, password, role FROM users WHERE username = ?`,
		username).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role)
	return u, err
}

// ListUsers returns all users ordered by username ascending.
func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, username, email, password, role FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsers returns the total number of user rows.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// UpdateUserRoleParams holds the fields for UpdateUserRole.
type UpdateUserRoleParams struct {
	Role     string
	Username string
}

// UpdateUserRole sets the role of the user with the given username.
// A username that matches no row is a silent no-op, not an error.
func (q *Queries) UpdateUserRole(ctx context.Context, arg UpdateUserRoleParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET role = ? WHERE username = ?`, arg.Role, arg.Username)
	return err
}

// DeleteUserByUsername deletes the user with the given username, if any.
func (q *Queries) DeleteUserByUsername(ctx context.Context, username string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	return err
}

// CreateMessageParams holds the fields for CreateMessage.
type CreateMessageParams struct {
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

// CreateMessage inserts a contact form submission.
func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO messages (name, email, message, created_at) VALUES (?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.Message, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListMessages returns all contact messages, most recent first.
func (q *Queries) ListMessages(ctx context.Context) ([]Message, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, email, message, created_at FROM messages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// CountMessages returns the total number of contact messages.
func (q *Queries) CountMessages(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n)
	return n, err
}

// DeleteMessage deletes the message with the given ID, if any.
func (q *Queries) DeleteMessage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	return err
}

// CreatePostParams holds the fields for CreatePost.
type CreatePostParams struct {
	Title     string
	Content   string
	Author    sql.NullString
	CreatedAt time.Time
}

// CreatePost inserts a news post.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO posts (title, content, author, created_at) VALUES (?, ?, ?, ?)`,
		arg.Title, arg.Content, arg.Author, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetPostByID returns the post with the given ID.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (Post, error) {
	var p Post
	err := q.db.QueryRowContext(ctx,
		`SELECT id, title, content, author, created_at FROM posts WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.CreatedAt)
	return p, err
}

// ListPosts returns all posts ordered by creation time descending.
func (q *Queries) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, title, content, author, created_at FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountPosts returns the total number of posts.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

// UpdatePostParams holds the fields for UpdatePost.
type UpdatePostParams struct {
	Title   string
	Content string
	Author  sql.NullString
	ID      int64
}

// UpdatePost updates title, content and author of the post with the given ID.
// An ID that matches no row is a silent no-op.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, author = ? WHERE id = ?`,
		arg.Title, arg.Content, arg.Author, arg.ID)
	return err
}

// DeletePost deletes the post with the given ID, if any.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	return err
}

// GetDashboardStats returns the aggregate counters shown on the dashboard in
// a single query. Latest-user ties break by row ID descending, latest-post
// ties by creation time then ID descending.
func (q *Queries) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats
	err := q.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT username FROM users ORDER BY id DESC LIMIT 1),
			(SELECT COUNT(*) FROM messages),
			(SELECT title FROM posts ORDER BY created_at DESC, id DESC LIMIT 1)`).
		Scan(&s.UserCount, &s.LatestUser, &s.MessageCount, &s.LatestPost)
	return s, err
}

// CreateEventParams holds the fields for CreateEvent.
type CreateEventParams struct {
	Level     string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts an event log record.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO events (level, message, metadata, created_at) VALUES (?, ?, ?, ?)`,
		arg.Level, arg.Message, arg.Metadata, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteEventsBefore removes event records created before the cutoff and
// returns the number of rows deleted.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
