// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/homesite/internal/render"
	"github.com/olegiv/homesite/internal/session"
	"github.com/olegiv/homesite/internal/store"
	"github.com/olegiv/homesite/internal/util"
)

// authorUnknown is shown when a post has no author on record.
const authorUnknown = "Unknown"

// PostView is a post prepared for template rendering: author and timestamp
// fall back to their display defaults.
type PostView struct {
	ID         int64
	Title      string
	Content    string
	AuthorName string
	Timestamp  string
}

// PostsListData holds data for the public and admin post list templates.
type PostsListData struct {
	Posts []PostView
}

// PostsHandler handles the public news page and the admin post panel.
type PostsHandler struct {
	queries     *store.Queries
	renderer    *render.Renderer
	basePath    string
	debugErrors bool
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *sql.DB, renderer *render.Renderer, basePath string, debugErrors bool) *PostsHandler {
	return &PostsHandler{
		queries:     store.New(db),
		renderer:    renderer,
		basePath:    basePath,
		debugErrors: debugErrors,
	}
}

func toPostView(p store.Post) PostView {
	v := PostView{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		AuthorName: authorUnknown,
	}
	if p.Author.Valid && p.Author.String != "" {
		v.AuthorName = p.Author.String
	}
	if p.CreatedAt.Valid {
		v.Timestamp = p.CreatedAt.Time.Format("2006-01-02 15:04")
	}
	return v
}

func (h *PostsHandler) listViews(r *http.Request) ([]PostView, error) {
	posts, err := h.queries.ListPosts(r.Context())
	if err != nil {
		return nil, err
	}
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, toPostView(p))
	}
	return views, nil
}

// List handles GET /posts - the public news page, newest first.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.listViews(r)
	if err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "listing posts failed", err,
			joinBase(h.basePath, RouteRoot), "Back to the homepage")
		return
	}
	h.renderer.Render(w, http.StatusOK, "posts", "News", PostsListData{Posts: views})
}

// AdminList handles GET /admin/posts - the post list plus the creation form.
func (h *PostsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	views, err := h.listViews(r)
	if err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "listing posts failed", err,
			joinBase(h.basePath, RouteAdmin), "Back to admin")
		return
	}
	h.renderer.Render(w, http.StatusOK, "admin_posts", "News posts", PostsListData{Posts: views})
}

// Create handles POST /admin/posts. Empty title or content is rejected with
// 400; the author is taken from the username cookie, "Unknown" when absent.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	postsURL := joinBase(h.basePath, RouteAdminPosts)

	if err := r.ParseForm(); err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "post form parse failed", err,
			postsURL, "Back to posts")
		return
	}

	title := r.PostFormValue("title")
	content := r.PostFormValue("content")
	if title == "" || content == "" {
		renderMessage(w, h.renderer, http.StatusBadRequest, messageData{
			Heading:  "Title and content are required.",
			LinkURL:  postsURL,
			LinkText: "Back to posts",
		})
		return
	}

	author := session.FromRequest(r).DecodedUsername()
	if author == "" {
		author = authorUnknown
	}

	id, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Title:     title,
		Content:   content,
		Author:    util.NullStringFromValue(author),
		CreatedAt: time.Now(),
	})
	if err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "creating post failed", err,
			postsURL, "Back to posts")
		return
	}

	slog.Info("post created", "post_id", id, "author", author)
	http.Redirect(w, r, postsURL, http.StatusFound)
}

// PostEditData holds data for the edit form template.
type PostEditData struct {
	ID      int64
	Title   string
	Content string
	Author  string
}

// EditForm handles GET /admin/edit-post?id=<id>. A missing id redirects to
// the list; an id matching no row is a 404 page.
func (h *PostsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	postsURL := joinBase(h.basePath, RouteAdminPosts)

	id, ok := parseID(r)
	if !ok {
		http.Redirect(w, r, postsURL, http.StatusFound)
		return
	}

	post, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			renderMessage(w, h.renderer, http.StatusNotFound, messageData{
				Heading:  "Post not found.",
				LinkURL:  postsURL,
				LinkText: "Back to posts",
			})
			return
		}
		storeErrorPage(w, h.renderer, h.debugErrors, "loading post failed", err,
			postsURL, "Back to posts")
		return
	}

	data := PostEditData{
		ID:      post.ID,
		Title:   post.Title,
		Content: post.Content,
	}
	if post.Author.Valid {
		data.Author = post.Author.String
	}
	h.renderer.Render(w, http.StatusOK, "post_edit", "Edit post", data)
}

// Update handles POST /admin/update-post?id=<id>. The id travels as a query
// parameter on the POST target, not in the body. An empty author becomes
// NULL. The redirect back to the list happens whether or not the id
// matched a row.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	postsURL := joinBase(h.basePath, RouteAdminPosts)

	id, ok := parseID(r)
	if !ok {
		http.Redirect(w, r, postsURL, http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "post form parse failed", err,
			postsURL, "Back to posts")
		return
	}

	if err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
		Author:  util.NullStringFromValue(r.PostFormValue("author")),
		ID:      id,
	}); err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "updating post failed", err,
			postsURL, "Back to posts")
		return
	}

	slog.Info("post updated", "post_id", id)
	http.Redirect(w, r, postsURL, http.StatusFound)
}

// Delete handles GET /admin/delete-post?id=<id>. A missing or unmatched id
// redirects back without error.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postsURL := joinBase(h.basePath, RouteAdminPosts)

	id, ok := parseID(r)
	if !ok {
		http.Redirect(w, r, postsURL, http.StatusFound)
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		storeErrorPage(w, h.renderer, h.debugErrors, "deleting post failed", err,
			postsURL, "Back to posts")
		return
	}

	slog.Info("post deleted", "post_id", id)
	http.Redirect(w, r, postsURL, http.StatusFound)
}
