// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package display owns the terminal region where live indicators are drawn.
//
// A Display runs one render goroutine. Every refresh interval it moves the
// cursor back to the top of the region it drew last time, prints any
// queued one-shot lines (these scroll up and stay), then redraws each
// visible indicator on its own line. Lines left over from a taller previous
// frame are blanked.
//
// Only three control sequences are used: cursor up (ESC [A), erase to end
// of line (ESC [K) and carriage return.
//
// Producers never block on the render goroutine: Add, Remove and Puts take
// a short mutex that is never held across an indicator's Render.
package display
