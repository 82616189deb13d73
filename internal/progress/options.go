// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package progress

import (
	"time"

	"github.com/jeranaias/tikibar/internal/render"
	"github.com/jeranaias/tikibar/internal/styles"
)

// Option configures New. Options that resolve presets or compile templates
// can fail; New returns the first error.
type Option func(*options) error

type options struct {
	length      int64
	width       int
	bar         *render.Bar
	spinner     *render.Spinner
	template    *render.Template
	templateSrc string
	prefix      string
	message     string
	hidden      bool
	etaWindow   int
	maxMsgWidth int
	now         func() time.Time
}

func defaultOptions() options {
	return options{
		length:    Unbounded,
		width:     styles.DefaultWidth,
		etaWindow: render.DefaultETACapacity,
		now:       time.Now,
	}
}

// WithLength sets the number of steps to completion.
func WithLength(n int64) Option {
	return func(o *options) error {
		o.length = n
		return nil
	}
}

// WithWidth sets the bar width in cells.
func WithWidth(width int) Option {
	return func(o *options) error {
		o.width = width
		return nil
	}
}

// WithBar renders with b, resized to the configured width.
func WithBar(b *render.Bar) Option {
	return func(o *options) error {
		o.bar = b
		return nil
	}
}

// WithBarStyle renders with the named preset bar.
func WithBarStyle(name string) Option {
	return func(o *options) error {
		b, err := styles.Bar(name)
		if err != nil {
			return err
		}
		o.bar = b
		return nil
	}
}

// WithSpinner animates with s.
func WithSpinner(s *render.Spinner) Option {
	return func(o *options) error {
		o.spinner = s
		return nil
	}
}

// WithSpinnerStyle animates with the named preset spinner.
func WithSpinnerStyle(name string) Option {
	return func(o *options) error {
		s, err := styles.Spinner(name)
		if err != nil {
			return err
		}
		o.spinner = s
		return nil
	}
}

// WithTemplate compiles source as the line template.
func WithTemplate(source string) Option {
	return func(o *options) error {
		o.template = nil
		o.templateSrc = source
		return nil
	}
}

// WithCompiledTemplate uses an already compiled template.
func WithCompiledTemplate(t *render.Template) Option {
	return func(o *options) error {
		o.template = t
		o.templateSrc = ""
		return nil
	}
}

// WithTemplateStyle uses the named preset template.
func WithTemplateStyle(name string) Option {
	return func(o *options) error {
		src, err := styles.TemplateSource(name)
		if err != nil {
			return err
		}
		o.template = nil
		o.templateSrc = src
		return nil
	}
}

// WithPrefix sets the initial prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) error {
		o.prefix = prefix
		return nil
	}
}

// WithMessage sets the initial message.
func WithMessage(message string) Option {
	return func(o *options) error {
		o.message = message
		return nil
	}
}

// WithHidden starts the indicator hidden.
func WithHidden(hidden bool) Option {
	return func(o *options) error {
		o.hidden = hidden
		return nil
	}
}

// WithETAWindow sets how many samples the ETA averages over.
func WithETAWindow(samples int) Option {
	return func(o *options) error {
		o.etaWindow = samples
		return nil
	}
}

// WithMaxMessageWidth truncates the msg variable to width cells. Zero
// disables truncation.
func WithMaxMessageWidth(width int) Option {
	return func(o *options) error {
		o.maxMsgWidth = width
		return nil
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now != nil {
			o.now = now
		}
		return nil
	}
}
