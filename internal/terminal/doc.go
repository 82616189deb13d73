// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal answers questions about the terminal tikibar draws on.
//
// It is the single source of truth for whether ANSI color is allowed. The
// render package asks ColorsEnabled once per style format and never inspects
// the environment itself.
//
// # Color Decision
//
// ColorsEnabled is computed once and cached:
//   - NO_COLOR (any non-empty value) disables color
//   - CLICOLOR_FORCE or FORCE_COLOR (non-empty, not "0") forces color
//   - CLICOLOR=0 disables color
//   - otherwise color is enabled when stdout is a TTY
//
// Tests override the decision with ForceColorsEnabled.
//
// # Usage
//
//	if err := terminal.EnableVirtualTerminal(os.Stderr); err != nil {
//	    // the console does not understand escape sequences
//	}
//	width := terminal.GetTerminalWidth()
package terminal
