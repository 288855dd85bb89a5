// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/homesite/internal/store"
	"github.com/olegiv/homesite/internal/util"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, store.Migrate(db))
	return db
}

func TestCreateUserAndLookup(t *testing.T) {
	q := store.New(testDB(t))
	ctx := context.Background()

	user, err := q.CreateUser(ctx, store.CreateUserParams{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "pw1",
		Role:     store.RoleUser,
	})
	require.NoError(t, err)
	assert.Positive(t, user.ID)

	got, err := q.GetUserByCredentials(ctx, store.GetUserByCredentialsParams{
		Username: "alice",
		Password: "pw1",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, store.RoleUser, got.Role)

	// Credentials are compared verbatim: wrong password finds nothing.
	_, err = q.GetUserByCredentials(ctx, store.GetUserByCredentialsParams{
		Username: "alice",
		Password: "PW1",
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCreateUserUniqueness(t *testing.T) {
	q := store.New(testDB(t))
	ctx := context.Background()

	_, err := q.CreateUser(ctx, store.CreateUserParams{
		Username: "alice", Email: "alice@x.com", Password: "pw", Role: store.RoleUser,
	})
	require.NoError(t, err)

	_, err = q.CreateUser(ctx, store.CreateUserParams{
		Username: "alice", Email: "other@x.com", Password: "pw", Role: store.RoleUser,
	})
	assert.Error(t, err, "duplicate username must fail")

	_, err = q.CreateUser(ctx, store.CreateUserParams{
		Username: "bob", Email: "alice@x.com", Password: "pw", Role: store.RoleUser,
	})
	assert.Error(t, err, "duplicate email must fail")
}

func TestListUsersOrderedByUsername(t *testing.T) {
	q := store.New(testDB(t))
	ctx := context.Background()

	for _, name := range []string{"charlie", "alice", "bob"} {
		_, err := q.CreateUser(ctx, store.CreateUserParams{
			Username: name, Email: name + "@x.com", Password: "pw", Role: store.RoleUser,
		})
		require.NoError(t, err)
	}

	users, err := q.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "charlie", users[2].Username)
}

func TestUpdateUserRole(t *testing.T) {
	q := store.New(testDB(t))
	ctx := context.Background()

	_, err := q.CreateUser(ctx, store.CreateUserParams{
		Username: "alice", Email: "alice@x.com", Password: "pw", Role: store.RoleUser,
	})
	require.NoError(t, err)

	require.NoError(t, q.UpdateUserRole(ctx, store.UpdateUserRoleParams{
		Role: store.RoleAdmin, Username: "alice",
	}))

	got, err := q.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	// Updating an unknown username is a silent no-op.
	require.NoError(t, q.UpdateUserRole(ctx, store.UpdateUserRoleParams{
		Role: store.RoleAdmin, Username: "nobody",
	}))
}

func TestPostsAuthorNull(t *testing.T) {
	q := store.New(testDB(t))
	ctx := context.Background()

	id, err := q.CreatePost(ctx, store.CreatePostParams{
		Title:     "T",
		Content:   "C",
		Author:    util.NullStringFromValue(""),
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	post, err := q.GetPostByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, post.Author.Valid, "empty author must be stored as NULL")
}

func TestListPostsNewestFirst(t *testing.T) {
	q := store.New(testDB(t))
	ctx := context.Background()

	base := time.Now()
	for i, title := range []string{"first", "second", "third"} {
		_, err := q.CreatePost(ctx, store.CreatePostParams{
			Title:     title,
			Content:   "c",
			Author:    util.NullStringFromValue("a"),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	posts, err := q.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Title)
	assert.Equal(t, "first", posts[2].Title)
}

func TestDashboardStatsEmpty(t *testing.T) {
	q := store.New(testDB(t))

	stats, err := q.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.UserCount)
	assert.False(t, stats.LatestUser.Valid)
	assert.Zero(t, stats.MessageCount)
	assert.False(t, stats.LatestPost.Valid)
}

func TestDashboardStats(t *testing.T) {
	q := store.New(testDB(t))
	ctx := context.Background()

	for _, name := range []string{"alice", "bob"} {
		_, err := q.CreateUser(ctx, store.CreateUserParams{
			Username: name, Email: name + "@x.com", Password: "pw", Role: store.RoleUser,
		})
		require.NoError(t, err)
	}
	_, err := q.CreateMessage(ctx, store.CreateMessageParams{
		Name: "visitor", Email: "v@x.com", Message: "hi", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	_, err = q.CreatePost(ctx, store.CreatePostParams{
		Title: "news", Content: "c", Author: util.NullStringFromValue("alice"), CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	stats, err := q.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.UserCount)
	// Latest user breaks ties by insertion order, newest row wins.
	assert.Equal(t, "bob", stats.LatestUser.String)
	assert.EqualValues(t, 1, stats.MessageCount)
	assert.Equal(t, "news", stats.LatestPost.String)
}

func TestDeleteEventsBefore(t *testing.T) {
	q := store.New(testDB(t))
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	_, err := q.CreateEvent(ctx, store.CreateEventParams{
		Level: "warning", Message: "old", Metadata: "{}", CreatedAt: old,
	})
	require.NoError(t, err)
	_, err = q.CreateEvent(ctx, store.CreateEventParams{
		Level: "error", Message: "new", Metadata: "{}", CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	deleted, err := q.DeleteEventsBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}

func TestSeed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	params := store.SeedParams{Username: "admin", Email: "admin@example.com", Password: "changeme"}

	// Disabled seeding creates nothing.
	require.NoError(t, store.Seed(ctx, db, false, params))
	q := store.New(db)
	n, err := q.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// Enabled seeding creates the admin once, and only once.
	require.NoError(t, store.Seed(ctx, db, true, params))
	require.NoError(t, store.Seed(ctx, db, true, params))

	admin, err := q.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	n, err = q.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
