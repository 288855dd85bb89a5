// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"

	"github.com/olegiv/homesite/internal/middleware"
	"github.com/olegiv/homesite/internal/render"
	"github.com/olegiv/homesite/internal/router"
)

// Route paths, base-relative.
const (
	RouteRoot          = "/"
	RouteIndexHTML     = "/index.html"
	RouteAboutUs       = "/about-us"
	RouteLogin         = "/login"
	RouteRegister      = "/register"
	RouteContact       = "/contact"
	RouteDashboard     = "/dashboard"
	RoutePosts         = "/posts"
	RouteLogout        = "/logout"
	RouteAdmin         = "/admin"
	RouteAdminUsers    = "/admin/users"
	RouteAdminMessages = "/admin/messages"
	RouteAdminPosts    = "/admin/posts"
	RouteFavicon       = "/favicon.ico"

	// Prefix routes carrying their argument in the query string.
	RouteAdminUpdatePost    = "/admin/update-post"
	RouteAdminMakeAdmin     = "/admin/make-admin"
	RouteAdminRemoveAdmin   = "/admin/remove-admin"
	RouteAdminDeleteUser    = "/admin/delete-user"
	RouteAdminDeleteMessage = "/admin/delete-message"
	RouteAdminDeletePost    = "/admin/delete-post"
	RouteAdminEditPost      = "/admin/edit-post"

	RoutePublicPrefix = "/public/"
	RouteScriptSuffix = ".js"
)

// Config holds everything needed to build the route table.
type Config struct {
	DB          *sql.DB
	Renderer    *render.Renderer
	BasePath    string
	WebDir      string
	DebugErrors bool
}

// Routes builds the ordered route table. Registration order is the route
// precedence; the blocks below must stay in this sequence because several
// prefix matchers overlap exact paths (e.g. "/admin/posts" vs
// "/admin/update-post?id=N").
func Routes(cfg Config) *router.Router {
	pages := NewPagesHandler(cfg.WebDir)
	auth := NewAuthHandler(cfg.DB, cfg.Renderer, cfg.BasePath, cfg.DebugErrors)
	contact := NewContactHandler(cfg.DB, cfg.Renderer, cfg.BasePath, cfg.DebugErrors)
	dashboard := NewDashboardHandler(cfg.DB, cfg.Renderer, cfg.BasePath, cfg.DebugErrors)
	admin := NewAdminHandler(cfg.DB, cfg.Renderer, cfg.BasePath, cfg.DebugErrors)
	posts := NewPostsHandler(cfg.DB, cfg.Renderer, cfg.BasePath, cfg.DebugErrors)

	guard := middleware.Guard{LoginURL: joinBase(cfg.BasePath, RouteLogin)}

	rt := router.New(cfg.BasePath)

	// Form submissions
	rt.Post(RouteLogin, auth.Login)
	rt.Post(RouteRegister, auth.Register)
	rt.Post(RouteContact, contact.Submit)
	rt.Post(RouteAdminPosts, guard.RequireAdmin(posts.Create))
	rt.PostPrefix(RouteAdminUpdatePost, guard.RequireAdmin(posts.Update))

	// Pages
	rt.Get(RouteRoot, pages.Home)
	rt.Get(RouteIndexHTML, pages.Home)
	rt.Get(RouteAboutUs, pages.About)
	rt.Get(RouteLogin, pages.LoginForm)
	rt.Get(RouteRegister, pages.RegisterForm)
	rt.Get(RouteDashboard, guard.RequireLogin(dashboard.Show))
	rt.Get(RouteAdmin, guard.RequireAdmin(admin.Menu))
	rt.Get(RouteAdminUsers, guard.RequireAdmin(admin.Users))
	rt.Get(RouteAdminMessages, guard.RequireAdmin(admin.Messages))
	rt.Get(RouteAdminPosts, guard.RequireAdmin(posts.AdminList))
	rt.Get(RouteContact, pages.ContactForm)
	rt.Get(RoutePosts, posts.List)
	rt.Get(RouteLogout, auth.Logout)

	// Admin actions keyed by query parameter
	rt.GetPrefix(RouteAdminMakeAdmin, guard.RequireAdmin(admin.MakeAdmin))
	rt.GetPrefix(RouteAdminRemoveAdmin, guard.RequireAdmin(admin.RemoveAdmin))
	rt.GetPrefix(RouteAdminDeleteUser, guard.RequireAdmin(admin.DeleteUser))
	rt.GetPrefix(RouteAdminDeleteMessage, guard.RequireAdmin(admin.DeleteMessage))
	rt.GetPrefix(RouteAdminDeletePost, guard.RequireAdmin(posts.Delete))
	rt.GetPrefix(RouteAdminEditPost, guard.RequireAdmin(posts.EditForm))

	// Static assets
	rt.GetPrefix(RoutePublicPrefix, pages.Public)
	rt.GetSuffix(RouteScriptSuffix, pages.Script)
	rt.Get(RouteFavicon, pages.Favicon)

	return rt
}
