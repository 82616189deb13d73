// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package progress

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jeranaias/tikibar/internal/render"
	"github.com/jeranaias/tikibar/internal/styles"
	"github.com/jeranaias/tikibar/internal/util"
)

// Unbounded is the length of an indicator with no known end.
const Unbounded int64 = -1

// ETACutoff is the shortest estimate worth showing; anything at or below it
// renders as empty.
const ETACutoff = time.Second

// Progress is one live indicator: a bar, a spinner, or a line of text.
type Progress struct {
	position atomic.Int64
	length   atomic.Int64
	message  atomic.Pointer[string]
	prefix   atomic.Pointer[string]
	hidden   atomic.Bool
	tick     atomic.Uint64

	bar         *render.Bar
	spinner     *render.Spinner
	template    *render.Template
	vars        render.Vars
	start       time.Time
	now         func() time.Time
	maxMsgWidth int

	// renderMu serializes Render; producers never take it
	renderMu sync.Mutex
	lastPos  int64
	eta      *render.ETA
}

// New builds a Progress. Configuration problems (unknown preset, bad
// template, negative width) are returned here, never from Render.
func New(opts ...Option) (*Progress, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	if o.bar == nil {
		o.bar, _ = styles.Bar(styles.DefaultBar)
	}
	if o.spinner == nil {
		o.spinner, _ = styles.Spinner(styles.DefaultSpinner)
	}
	if o.template == nil {
		src := o.templateSrc
		if src == "" {
			src, _ = styles.TemplateSource(styles.DefaultTemplate)
		}
		t, err := render.CompileTemplate(src)
		if err != nil {
			return nil, err
		}
		o.template = t
	}

	bar, err := o.bar.Resize(o.width)
	if err != nil {
		return nil, err
	}

	p := &Progress{
		bar:         bar,
		spinner:     o.spinner,
		template:    o.template,
		now:         o.now,
		maxMsgWidth: o.maxMsgWidth,
		eta:         render.NewETA(o.etaWindow),
	}
	p.length.Store(o.length)
	p.message.Store(&o.message)
	p.prefix.Store(&o.prefix)
	p.hidden.Store(o.hidden)
	p.start = p.now()

	p.vars = render.Vars{
		render.KeyPrefix:  func() any { return p.Prefix() },
		render.KeyMsg:     p.renderMessage,
		render.KeySpinner: p.renderSpinner,
		render.KeyBar:     p.renderBar,
		render.KeyETA:     p.renderETA,
		render.KeyPos:     func() any { return p.Position() },
		render.KeyLen:     p.renderLength,
		render.KeyPct:     func() any { return p.Fraction() * 100 },
	}
	return p, nil
}

// NewBar builds a bar indicator from a preset bar name.
func NewBar(name string, width int, opts ...Option) (*Progress, error) {
	return New(append([]Option{WithBarStyle(name), WithWidth(width)}, opts...)...)
}

// NewSpinner builds a spinner-and-message indicator from a preset spinner
// name.
func NewSpinner(name string, opts ...Option) (*Progress, error) {
	return New(append([]Option{WithSpinnerStyle(name), WithTemplateStyle(styles.SpinnerTemplate)}, opts...)...)
}

// =============================================================================
// SETTERS
// =============================================================================

// SetPosition moves the indicator to pos.
func (p *Progress) SetPosition(pos int64) { p.position.Store(pos) }

// Inc advances the position by delta and returns the new position.
func (p *Progress) Inc(delta int64) int64 { return p.position.Add(delta) }

// SetLength sets the number of steps to completion; Unbounded for none.
func (p *Progress) SetLength(n int64) { p.length.Store(n) }

// SetMessage replaces the msg variable.
func (p *Progress) SetMessage(msg string) { p.message.Store(&msg) }

// SetPrefix replaces the prefix variable.
func (p *Progress) SetPrefix(prefix string) { p.prefix.Store(&prefix) }

// SetHidden hides or shows the indicator.
func (p *Progress) SetHidden(hidden bool) { p.hidden.Store(hidden) }

// Finish records message and moves the position to the end. An unbounded
// indicator latches its current position as the length.
func (p *Progress) Finish(message string) {
	p.message.Store(&message)
	if n := p.length.Load(); n >= 0 {
		p.position.Store(n)
		return
	}
	p.length.Store(p.position.Load())
}

// Clear hides the indicator and finishes it with an empty message.
func (p *Progress) Clear() {
	p.hidden.Store(true)
	p.Finish("")
}

// =============================================================================
// GETTERS
// =============================================================================

// Position returns the current position.
func (p *Progress) Position() int64 { return p.position.Load() }

// Length returns the length, or Unbounded.
func (p *Progress) Length() int64 { return p.length.Load() }

// Message returns the current message.
func (p *Progress) Message() string { return *p.message.Load() }

// Prefix returns the current prefix.
func (p *Progress) Prefix() string { return *p.prefix.Load() }

// Tick returns how many times the indicator has been rendered.
func (p *Progress) Tick() uint64 { return p.tick.Load() }

// Start returns when the indicator was created.
func (p *Progress) Start() time.Time { return p.start }

// Elapsed returns the time since the indicator was created.
func (p *Progress) Elapsed() time.Duration { return p.now().Sub(p.start) }

// Bar returns the bar renderer, sized to this indicator.
func (p *Progress) Bar() *render.Bar { return p.bar }

// Spinner returns the spinner renderer.
func (p *Progress) Spinner() *render.Spinner { return p.spinner }

// Template returns the compiled line template.
func (p *Progress) Template() *render.Template { return p.template }

// IsFinished reports whether the position has reached a bounded length.
func (p *Progress) IsFinished() bool {
	n := p.length.Load()
	return n >= 0 && p.position.Load() == n
}

// IsVisible reports whether the indicator should be drawn.
func (p *Progress) IsVisible() bool { return !p.hidden.Load() }

// IsHidden is the inverse of IsVisible.
func (p *Progress) IsHidden() bool { return p.hidden.Load() }

// Fraction returns completion in [0, 1].
func (p *Progress) Fraction() float64 {
	return fraction(p.position.Load(), p.length.Load())
}

func fraction(pos, length int64) float64 {
	switch {
	case pos == 0:
		return 0.0
	case length == 0:
		return 1.0
	case length < 0:
		return 0.0
	}
	f := float64(pos) / float64(length)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// =============================================================================
// RENDERING
// =============================================================================

// Render produces the indicator's line. It samples the ETA when the
// position moved since the previous render and always advances the tick,
// so a spinner keeps turning while the position is stalled.
func (p *Progress) Render() string {
	p.renderMu.Lock()
	defer p.renderMu.Unlock()

	if pos := p.position.Load(); pos != p.lastPos {
		p.eta.Step(p.now(), pos)
		p.lastPos = pos
	}
	p.tick.Add(1)
	return p.template.Render(p.vars)
}

func (p *Progress) renderMessage() any {
	msg := p.Message()
	if p.maxMsgWidth > 0 {
		return util.TruncateWidth(msg, p.maxMsgWidth)
	}
	return msg
}

func (p *Progress) renderSpinner() any {
	if p.IsFinished() {
		return p.spinner.Finish()
	}
	return p.spinner.Frame(p.tick.Load())
}

func (p *Progress) renderBar() any {
	return p.bar.FrameFor(p.Fraction())
}

func (p *Progress) renderLength() any {
	if n := p.length.Load(); n >= 0 {
		return n
	}
	return int64(0)
}

// renderETA runs under renderMu, from inside Render.
func (p *Progress) renderETA() any {
	n := p.length.Load()
	if n < 0 || p.IsFinished() {
		return ""
	}
	remaining := n - p.position.Load()
	if remaining <= 0 {
		return ""
	}
	if est := p.eta.Estimate(remaining); est > ETACutoff {
		return est.Round(time.Second).String()
	}
	return ""
}
