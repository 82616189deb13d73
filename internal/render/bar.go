// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strconv"
	"strings"
)

// Bar is a precomputed progress bar of a fixed width.
//
// chars lists the glyphs from background to fill with any intermediate
// glyphs, low to high, in between. Frame(0) is all background and
// Frame(Resolution()) is all fill.
type Bar struct {
	width  int
	chars  []string
	steps  int
	res    int
	frames []string
}

// NewBar builds a bar width cells wide from the glyph ramp chars.
func NewBar(width int, chars []string) (*Bar, error) {
	if len(chars) < 2 {
		return nil, configErr("bar", strings.Join(chars, ""), "must specify at least two chars")
	}
	if width < 0 {
		return nil, configErr("bar", strconv.Itoa(width), "width must not be negative")
	}

	b := &Bar{
		width: width,
		chars: append([]string(nil), chars...),
		steps: (len(chars) - 2) * width,
	}
	b.res = b.steps
	if b.res == 0 {
		// No intermediates: fall back to whole-cell resolution
		b.res = width
	}

	b.frames = make([]string, b.res+1)
	for pos := range b.frames {
		b.frames[pos] = b.renderFrame(pos)
	}
	return b, nil
}

// NewBarFromString builds a bar from a glyph ramp written as one string,
// e.g. " ▏▎▍▌▋▊▉█".
func NewBarFromString(width int, chars string) (*Bar, error) {
	return NewBar(width, SplitGlyphs(chars))
}

// MustNewBarFromString is NewBarFromString for static tables; it panics on
// error.
func MustNewBarFromString(width int, chars string) *Bar {
	b, err := NewBarFromString(width, chars)
	if err != nil {
		panic(err)
	}
	return b
}

// Width returns the bar's width in cells.
func (b *Bar) Width() int { return b.width }

// Chars returns a copy of the glyph ramp.
func (b *Bar) Chars() []string { return append([]string(nil), b.chars...) }

// Steps returns the number of sub-cell steps, (len(chars)-2)*width. It is
// zero for a bar without intermediate glyphs.
func (b *Bar) Steps() int { return b.steps }

// Resolution returns the index of the last frame: Steps() when the bar has
// intermediate glyphs, Width() otherwise.
func (b *Bar) Resolution() int { return b.res }

// Frame returns the cached frame for pos. Positions outside
// 0..Resolution() are clamped.
func (b *Bar) Frame(pos int) string {
	if pos < 0 {
		pos = 0
	}
	if pos > b.res {
		pos = b.res
	}
	return b.frames[pos]
}

// FrameFor returns the frame for a completion fraction in [0, 1].
func (b *Bar) FrameFor(fraction float64) string {
	return b.Frame(int(fraction * float64(b.res)))
}

// Frames returns a copy of every frame, 0..Resolution().
func (b *Bar) Frames() []string {
	return append([]string(nil), b.frames...)
}

// Resize returns an equivalent bar for a new width. The receiver is
// returned unchanged if the width is the same.
func (b *Bar) Resize(width int) (*Bar, error) {
	if width == b.width {
		return b, nil
	}
	return NewBar(width, b.chars)
}

func (b *Bar) renderFrame(pos int) string {
	k := len(b.chars)
	bgChar, fillChar := b.chars[0], b.chars[k-1]
	inter := b.chars[1 : k-1]

	n := min(len(inter), b.width)
	div := max(n, 1)

	// scaled is floor(width * pct * n) computed without floating point
	scaled := 0
	if b.res > 0 {
		scaled = pos * b.width * div / b.res
	}
	fill := scaled / div
	bg := b.width - fill

	var sb strings.Builder
	sb.Grow(b.width * len(fillChar))
	sb.WriteString(strings.Repeat(fillChar, fill))

	if pos > 0 && bg > 0 && n > 0 {
		sb.WriteString(inter[scaled%n])
		bg--
	}

	sb.WriteString(strings.Repeat(bgChar, bg))
	return sb.String()
}
