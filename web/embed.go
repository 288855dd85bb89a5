// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web holds the embedded page shell templates. The page files and
// static assets alongside them are served from disk, not embedded, so they
// can be edited without a rebuild.
package web

import "embed"

// Templates contains the base layout and page content templates.
//
//go:embed templates
var Templates embed.FS
