// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/olegiv/homesite/internal/config"
	"github.com/olegiv/homesite/internal/handler"
	"github.com/olegiv/homesite/internal/logging"
	"github.com/olegiv/homesite/internal/middleware"
	"github.com/olegiv/homesite/internal/render"
	"github.com/olegiv/homesite/internal/store"
	"github.com/olegiv/homesite/internal/version"
	"github.com/olegiv/homesite/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// eventRetention is how long event log rows are kept before the nightly
// prune removes them.
const eventRetention = 90 * 24 * time.Hour

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "homesite - personal website server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMESITE_DB_PATH        SQLite database path (default: ./data/homesite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMESITE_SERVER_HOST    Bind address (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMESITE_SERVER_PORT    Server port (default: 4127)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMESITE_BASE_PATH      Base path prefix for reverse-proxy deployment (e.g. /app127)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMESITE_WEB_DIR        Directory with page files and assets (default: ./web)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMESITE_ENV            Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMESITE_DEBUG_ERRORS   Include raw store errors in error pages (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMESITE_DO_SEED        Create the initial admin user on start (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Println(info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.DoSeed, store.SeedParams{
		Username: cfg.SeedAdminUser,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
	}); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Initialize the page shell renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		BasePath:    cfg.BasePath,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	// Nightly event log pruning
	queries := store.New(db)
	c := cron.New()
	if _, err := c.AddFunc("@daily", func() {
		n, err := queries.DeleteEventsBefore(context.Background(), time.Now().Add(-eventRetention))
		if err != nil {
			slog.Error("pruning event log failed", "error", err)
			return
		}
		if n > 0 {
			slog.Info("pruned event log", "deleted", n)
		}
	}); err != nil {
		return fmt.Errorf("scheduling event log prune: %w", err)
	}
	c.Start()
	defer c.Stop()

	// Outer middleware stack; route precedence lives in the mounted table.
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.SecurityHeaders)

	r.Mount("/", handler.Routes(handler.Config{
		DB:          db,
		Renderer:    renderer,
		BasePath:    cfg.BasePath,
		WebDir:      cfg.WebDir,
		DebugErrors: cfg.DebugErrors,
	}))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "base_path", cfg.BasePath, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
