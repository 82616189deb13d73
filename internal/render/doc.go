// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render holds the frame-level building blocks of tikibar.
//
// Everything in this package is computed once and then read many times:
//
//   - Style: a dotted modifier string ("red.bold") resolved to SGR codes
//   - Template: a format string with styling baked in at compile time
//   - Bar: every discrete frame of a progress bar, precomputed
//   - Spinner: fixed-width animation frames plus an optional finish frame
//   - ETA: a ring buffer moving average of time per step
//
// Bar, Spinner, Style and Template are immutable after construction and safe
// to share between goroutines. ETA is owned by a single renderer and is not
// synchronized.
//
// # Template Syntax
//
//	%<key.modifiers>spec   printf style, e.g. %<pct.green.bold> 3d
//	%{key.modifiers}       plain string, e.g. %{msg.dim}
//	%%                     a literal percent sign
//
// Keys are bar, spinner, pos, len, msg, prefix, eta and pct. Modifiers are
// color names, on_<color> backgrounds and the attributes bold, dim, italic,
// underlined, blink, reverse and hidden.
//
// # Errors
//
// Every constructor validates its input and returns a *ConfigError, which
// matches ErrConfig under errors.Is. Nothing in this package fails at
// render time.
package render
