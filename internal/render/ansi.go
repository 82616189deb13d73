// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"slices"
	"strconv"
	"strings"

	"github.com/jeranaias/tikibar/internal/terminal"
)

// =============================================================================
// SGR TABLES
// =============================================================================

// colors maps a color name to its SGR offset: foreground is 30+n,
// background is 40+n.
var colors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// attributes maps an attribute name to its SGR code.
var attributes = map[string]int{
	"bold":       1,
	"dim":        2,
	"italic":     3,
	"underlined": 4,
	"blink":      5,
	"reverse":    7,
	"hidden":     8,
}

const (
	sgrReset = "\x1b[0m"
	bgPrefix = "on_"
)

// ColorNames returns the recognised color names in SGR order.
func ColorNames() []string {
	return []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}
}

// AttributeNames returns the recognised attribute names in SGR order.
func AttributeNames() []string {
	return []string{"bold", "dim", "italic", "underlined", "blink", "reverse", "hidden"}
}

// =============================================================================
// STYLE
// =============================================================================

// Style is a parsed set of SGR modifiers. The zero Style formats text
// unchanged.
type Style struct {
	fg, bg       int
	hasFg, hasBg bool
	attrs        []int
}

// ParseStyle parses a dotted modifier string such as "red.on_white.bold".
// A later color token overrides an earlier one; repeated attributes are
// kept once.
func ParseStyle(dotted string) (Style, error) {
	var s Style
	if dotted == "" {
		return s, nil
	}

	for _, tok := range strings.Split(dotted, ".") {
		if name, ok := strings.CutPrefix(tok, bgPrefix); ok {
			if c, ok := colors[name]; ok {
				s.bg, s.hasBg = c, true
				continue
			}
		}
		if c, ok := colors[tok]; ok {
			s.fg, s.hasFg = c, true
			continue
		}
		if a, ok := attributes[tok]; ok {
			if !slices.Contains(s.attrs, a) {
				s.attrs = append(s.attrs, a)
			}
			continue
		}
		return Style{}, configErr("style", tok, "unknown modifier")
	}
	return s, nil
}

// MustParseStyle is ParseStyle for static tables; it panics on error.
func MustParseStyle(dotted string) Style {
	s, err := ParseStyle(dotted)
	if err != nil {
		panic(err)
	}
	return s
}

// IsZero reports whether the style carries no modifiers.
func (s Style) IsZero() bool {
	return !s.hasFg && !s.hasBg && len(s.attrs) == 0
}

// Prefix returns the escape codes that open this style, foreground first,
// then background, then attributes in the order they were parsed.
func (s Style) Prefix() string {
	var sb strings.Builder
	if s.hasFg {
		writeSGR(&sb, 30+s.fg)
	}
	if s.hasBg {
		writeSGR(&sb, 40+s.bg)
	}
	for _, a := range s.attrs {
		writeSGR(&sb, a)
	}
	return sb.String()
}

// Format wraps text in this style's escape codes followed by a reset.
// When color output is disabled, or the style is empty, text is returned
// unchanged.
func (s Style) Format(text string) string {
	if s.IsZero() || !terminal.ColorsEnabled() {
		return text
	}
	return s.Prefix() + text + sgrReset
}

func writeSGR(sb *strings.Builder, code int) {
	sb.WriteString("\x1b[")
	sb.WriteString(strconv.Itoa(code))
	sb.WriteByte('m')
}
