// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package display

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/tikibar/internal/metrics"
	"github.com/jeranaias/tikibar/internal/terminal"
)

// DefaultRefresh is the interval between frames, about 15 per second.
const DefaultRefresh = time.Second / 15

// Control sequences.
const (
	cursorUp  = "\x1b[A"
	eraseLine = "\x1b[K"
	lineStart = "\r"
)

// Renderable is anything the Display can draw on one line.
type Renderable interface {
	Render() string
	IsVisible() bool
}

// Handle identifies one registered Renderable.
type Handle struct {
	id uuid.UUID
	r  Renderable
}

// ID returns the handle's unique id, used to correlate log lines.
func (h *Handle) ID() uuid.UUID { return h.id }

// Renderable returns the wrapped Renderable.
func (h *Handle) Renderable() Renderable { return h.r }

// Option configures New.
type Option func(*Display)

// WithOutput draws to w instead of os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(d *Display) {
		if w != nil {
			d.out = w
		}
	}
}

// WithRefresh sets the interval between frames.
func WithRefresh(interval time.Duration) Option {
	return func(d *Display) {
		d.SetRefresh(interval)
	}
}

// WithLogger logs lifecycle events and render failures to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Display) {
		if logger != nil {
			d.log = logger
		}
	}
}

// WithMetrics records frame statistics on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(d *Display) {
		d.metrics = rec
	}
}

// Display draws a set of Renderables and keeps them updated until Join.
type Display struct {
	out     io.Writer
	log     *zap.Logger
	metrics *metrics.Recorder
	refresh atomic.Int64

	// mu guards handles and pending
	mu      sync.Mutex
	handles []*Handle
	pending []string

	// lastLines is owned by the render goroutine
	lastLines int

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// New creates a Display and starts its render goroutine. Call Join to
// stop it.
func New(opts ...Option) *Display {
	d := newDisplay(opts...)
	if f, ok := d.out.(*os.File); ok {
		if err := terminal.EnableVirtualTerminal(f); err != nil {
			d.log.Debug("virtual terminal processing unavailable", zap.Error(err))
		}
	}
	d.log.Debug("display started", zap.Duration("refresh", d.Refresh()))
	go d.run()
	return d
}

func newDisplay(opts ...Option) *Display {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Display{
		out:    os.Stderr,
		log:    zap.NewNop(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	d.refresh.Store(int64(DefaultRefresh))
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add registers r; it is drawn below every previously added Renderable.
func (d *Display) Add(r Renderable) *Handle {
	h := &Handle{id: uuid.New(), r: r}
	d.mu.Lock()
	d.handles = append(d.handles, h)
	d.mu.Unlock()
	d.log.Debug("handle added", zap.Stringer("handle", h.id))
	return h
}

// Remove unregisters h and reports whether it was registered. The lines it
// occupied are blanked on the next frame.
func (d *Display) Remove(h *Handle) bool {
	d.mu.Lock()
	i := slices.Index(d.handles, h)
	if i >= 0 {
		d.handles = slices.Delete(d.handles, i, i+1)
	}
	d.mu.Unlock()

	if i < 0 {
		return false
	}
	d.log.Debug("handle removed", zap.Stringer("handle", h.id))
	return true
}

// Len returns the number of registered handles.
func (d *Display) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handles)
}

// Puts queues lines to print above the indicators on the next frame.
// Embedded newlines split a line.
func (d *Display) Puts(lines ...string) {
	var split []string
	for _, l := range lines {
		split = append(split, strings.Split(l, "\n")...)
	}
	d.mu.Lock()
	d.pending = append(d.pending, split...)
	d.mu.Unlock()
}

// SetRefresh changes the interval between frames, starting with the next
// wait. Non-positive intervals are ignored.
func (d *Display) SetRefresh(interval time.Duration) {
	if interval > 0 {
		d.refresh.Store(int64(interval))
	}
}

// Refresh returns the interval between frames.
func (d *Display) Refresh() time.Duration {
	return time.Duration(d.refresh.Load())
}

// Join stops the render goroutine after one last frame and waits for it.
// It returns the error that ended the loop early, if any. Calling Join
// again returns the same result.
func (d *Display) Join() error {
	d.cancel()
	<-d.done
	return d.err
}

// Finish is Join.
func (d *Display) Finish() error {
	return d.Join()
}

// FinishAndClear unregisters every handle, then joins, leaving the
// indicator region blank.
func (d *Display) FinishAndClear() error {
	d.mu.Lock()
	d.handles = nil
	d.mu.Unlock()
	return d.Join()
}

// Done is closed when the render goroutine has exited.
func (d *Display) Done() <-chan struct{} {
	return d.done
}

func (d *Display) run() {
	defer close(d.done)

	timer := time.NewTimer(d.Refresh())
	defer timer.Stop()

	for {
		select {
		case <-d.ctx.Done():
		case <-timer.C:
		}

		running, err := d.renderIteration()
		if err != nil {
			d.err = err
			return
		}
		if !running {
			d.log.Debug("display stopped")
			return
		}
		timer.Reset(d.Refresh())
	}
}

// renderIteration draws one frame and reports whether the loop should keep
// going. Cancellation is sampled before drawing so the frame after Join is
// always drawn.
func (d *Display) renderIteration() (running bool, err error) {
	running = d.ctx.Err() == nil
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			running = false
			err = fmt.Errorf("render panic: %v", r)
			d.fail("panic", err)
		}
	}()

	d.mu.Lock()
	handles := slices.Clone(d.handles)
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	var buf bytes.Buffer
	buf.WriteString(strings.Repeat(cursorUp, d.lastLines))

	for _, line := range pending {
		buf.WriteString(eraseLine)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	lines := 0
	for _, h := range handles {
		if !h.r.IsVisible() {
			continue
		}
		buf.WriteString(lineStart)
		buf.WriteString(h.r.Render())
		buf.WriteString(eraseLine)
		buf.WriteByte('\n')
		lines++
	}

	if orphans := d.lastLines - lines; orphans > 0 {
		buf.WriteString(strings.Repeat(eraseLine+"\n", orphans))
		buf.WriteString(strings.Repeat(cursorUp, orphans))
	}
	d.lastLines = lines

	if _, werr := d.out.Write(buf.Bytes()); werr != nil {
		err = fmt.Errorf("write frame: %w", werr)
		d.fail("write", err)
		return false, err
	}

	d.metrics.ObserveFrame(lines, len(pending), time.Since(start))
	return running, nil
}

// fail leaves the cursor on a clean line and records err.
func (d *Display) fail(cause string, err error) {
	d.log.Error("render loop failed", zap.String("cause", cause), zap.Error(err))
	d.metrics.ObserveFailure(cause)
	_, _ = io.WriteString(d.out, lineStart+eraseLine)
}
