// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// SplitGlyphs normalises s to NFC and splits it into glyphs: one base rune
// plus any combining marks that follow it. Bars and spinners built from a
// plain string use this so "é" counts as a single cell.
func SplitGlyphs(s string) []string {
	s = norm.NFC.String(s)
	glyphs := make([]string, 0, utf8.RuneCountInString(s))

	start := -1
	for i, r := range s {
		if start >= 0 && norm.NFC.PropertiesString(string(r)).CCC() != 0 {
			continue
		}
		if start >= 0 {
			glyphs = append(glyphs, s[start:i])
		}
		start = i
	}
	if start >= 0 {
		glyphs = append(glyphs, s[start:])
	}
	return glyphs
}
