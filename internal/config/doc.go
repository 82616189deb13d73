// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tikibar.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TIKIBAR_*)
//   - ~/.tikibar/config.toml, or the path given to Load
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, err := cfg.Progress.Options()
//	d := display.New(display.WithRefresh(cfg.Display.Refresh()))
//
// Watch reloads the file when it changes so a running display can pick up
// a new refresh interval.
package config
