// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"HOMESITE_DB_PATH" envDefault:"./data/homesite.db"`
	ServerHost string `env:"HOMESITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"HOMESITE_SERVER_PORT" envDefault:"4127"`
	Env        string `env:"HOMESITE_ENV" envDefault:"development"`
	LogLevel   string `env:"HOMESITE_LOG_LEVEL" envDefault:"info"`

	// BasePath is a literal prefix stripped from every request path before
	// route matching, for reverse-proxy sub-path deployments (e.g. "/app127").
	BasePath string `env:"HOMESITE_BASE_PATH" envDefault:""`

	// WebDir is the directory holding page files and static assets.
	WebDir string `env:"HOMESITE_WEB_DIR" envDefault:"./web"`

	// DebugErrors includes raw store error text in rendered error pages.
	// Keep disabled outside development.
	DebugErrors bool `env:"HOMESITE_DEBUG_ERRORS" envDefault:"false"`

	// Seeding configuration
	DoSeed            bool   `env:"HOMESITE_DO_SEED" envDefault:"false"`
	SeedAdminUser     string `env:"HOMESITE_SEED_ADMIN_USER" envDefault:"admin"`
	SeedAdminEmail    string `env:"HOMESITE_SEED_ADMIN_EMAIL" envDefault:"admin@example.com"`
	SeedAdminPassword string `env:"HOMESITE_SEED_ADMIN_PASSWORD" envDefault:"changeme"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Base path must be empty or a rooted prefix without a trailing slash,
	// otherwise stripping produces paths that never match any route.
	if cfg.BasePath != "" {
		if !strings.HasPrefix(cfg.BasePath, "/") {
			return nil, fmt.Errorf("HOMESITE_BASE_PATH must start with '/', got %q", cfg.BasePath)
		}
		if strings.HasSuffix(cfg.BasePath, "/") {
			return nil, fmt.Errorf("HOMESITE_BASE_PATH must not end with '/', got %q", cfg.BasePath)
		}
	}

	return cfg, nil
}
