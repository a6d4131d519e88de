// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for askdocs.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Docs backend base URL, endpoint paths and throttling
//   - ThemeConfig: Site branding, placeholders and markdown rendering
//   - SearchConfig: Sample questions and input limits for the modal
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (ASKDOCS_*)
//   - ~/.askdocs/config.toml
//   - ~/.askdocs/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.BaseURL, cfg.Theme.Logo)
//
// Watch picks up edits to the file while the TUI is running.
package config
