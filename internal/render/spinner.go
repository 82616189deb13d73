// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Spinner cycles through a fixed list of equal-width frames.
type Spinner struct {
	frames []string
	finish string
	width  int
}

type spinnerOptions struct {
	mirror    bool
	finish    string
	hasFinish bool
}

// SpinnerOption configures NewSpinner.
type SpinnerOption func(*spinnerOptions)

// WithMirror appends the states in reverse, skipping the last state, so
// the animation bounces back and forth.
func WithMirror() SpinnerOption {
	return func(o *spinnerOptions) { o.mirror = true }
}

// WithFinishFrame sets the frame shown once the indicator has finished.
func WithFinishFrame(frame string) SpinnerOption {
	return func(o *spinnerOptions) {
		o.finish = frame
		o.hasFinish = true
	}
}

// NewSpinner builds a spinner from at least two states. Every frame,
// including the finish frame, is right-padded to the widest one.
func NewSpinner(states []string, opts ...SpinnerOption) (*Spinner, error) {
	if len(states) < 2 {
		return nil, configErr("spinner", strings.Join(states, ""), "must specify at least two states")
	}

	var o spinnerOptions
	for _, opt := range opts {
		opt(&o)
	}

	frames := append([]string(nil), states...)
	if o.mirror {
		rev := slices.Clone(states)
		slices.Reverse(rev)
		frames = append(frames, rev[1:]...)
	}

	finish := frames[len(frames)-1]
	if o.hasFinish {
		finish = o.finish
	}

	width := runewidth.StringWidth(finish)
	for _, f := range frames {
		width = max(width, runewidth.StringWidth(f))
	}
	for i, f := range frames {
		frames[i] = padRight(f, width)
	}

	return &Spinner{
		frames: frames,
		finish: padRight(finish, width),
		width:  width,
	}, nil
}

// NewSpinnerFromString builds a spinner whose states are the glyphs of s.
func NewSpinnerFromString(states string, opts ...SpinnerOption) (*Spinner, error) {
	return NewSpinner(SplitGlyphs(states), opts...)
}

// MustNewSpinner is NewSpinner for static tables; it panics on error.
func MustNewSpinner(states []string, opts ...SpinnerOption) *Spinner {
	s, err := NewSpinner(states, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// MustNewSpinnerFromString is NewSpinnerFromString for static tables; it
// panics on error.
func MustNewSpinnerFromString(states string, opts ...SpinnerOption) *Spinner {
	s, err := NewSpinnerFromString(states, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Frame returns the frame for tick, wrapping around the frame list.
func (s *Spinner) Frame(tick uint64) string {
	return s.frames[tick%uint64(len(s.frames))]
}

// Finish returns the terminal frame.
func (s *Spinner) Finish() string { return s.finish }

// Len returns the number of animation frames.
func (s *Spinner) Len() int { return len(s.frames) }

// Width returns the display width every frame is padded to.
func (s *Spinner) Width() int { return s.width }

// States returns a copy of the padded animation frames.
func (s *Spinner) States() []string { return slices.Clone(s.frames) }

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
