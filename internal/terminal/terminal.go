// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStderrTTY returns true if stderr is a terminal.
func IsStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// IsTerminal reports whether f refers to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// =============================================================================
// TERMINAL WIDTH DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest width we report
	MinTerminalWidth = 20
)

// GetTerminalWidth returns the current width of stdout.
// Returns DefaultTerminalWidth if width cannot be determined.
func GetTerminalWidth() int {
	return WidthOf(os.Stdout)
}

// WidthOf returns the width of the terminal behind f, or
// DefaultTerminalWidth when f is not a terminal.
func WidthOf(f *os.File) int {
	if f == nil {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var (
	colorsEnabled     bool
	colorsEnabledOnce sync.Once
	colorsMu          sync.RWMutex
)

// ColorsEnabled returns true if ANSI styling should be emitted.
// See https://no-color.org/ and https://bixense.com/clicolors/.
func ColorsEnabled() bool {
	colorsEnabledOnce.Do(func() {
		enabled := detectColors(os.Getenv, IsStdoutTTY)
		colorsMu.Lock()
		colorsEnabled = enabled
		colorsMu.Unlock()
	})
	colorsMu.RLock()
	defer colorsMu.RUnlock()
	return colorsEnabled
}

// detectColors applies the environment precedence rules. It takes its
// inputs as functions so the rules can be tested without touching the
// process environment.
func detectColors(getenv func(string) string, isTTY func() bool) bool {
	// NO_COLOR takes precedence (any non-empty value disables colors)
	if getenv("NO_COLOR") != "" {
		return false
	}

	if v := getenv("CLICOLOR_FORCE"); v != "" && v != "0" {
		return true
	}
	if v := getenv("FORCE_COLOR"); v != "" && v != "0" {
		return true
	}

	if getenv("CLICOLOR") == "0" {
		return false
	}

	return isTTY()
}

// ForceColorsEnabled overrides color detection.
// Used by tests and the --color flag.
func ForceColorsEnabled(enabled bool) {
	// Burn the once so a later ColorsEnabled call cannot re-detect
	colorsEnabledOnce.Do(func() {})
	colorsMu.Lock()
	colorsEnabled = enabled
	colorsMu.Unlock()
}

// GetColorProfile returns the termenv color profile for stdout.
// Returns Ascii (no colors) when ColorsEnabled is false.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// ProfileName returns a human readable name for a termenv profile.
func ProfileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}
