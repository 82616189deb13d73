// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the tikibar command line driver.
//
// # Commands
//
//   - demo: run a scripted multi-indicator session
//   - styles: print every preset bar, spinner and template
//   - version: print build information
package cli
