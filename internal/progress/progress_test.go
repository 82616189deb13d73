// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package progress

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tikibar/internal/render"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func mustNew(t *testing.T, opts ...Option) *Progress {
	t.Helper()
	p, err := New(opts...)
	require.NoError(t, err)
	return p
}

func TestNew_Defaults(t *testing.T) {
	p := mustNew(t)

	assert.Equal(t, int64(0), p.Position())
	assert.Equal(t, Unbounded, p.Length())
	assert.Equal(t, "", p.Message())
	assert.Equal(t, "", p.Prefix())
	assert.True(t, p.IsVisible())
	assert.False(t, p.IsFinished())
	assert.Equal(t, 30, p.Bar().Width())
	assert.Equal(t, "%<bar.cyan>s %<pos>d/%<len>d", p.Template().Source())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"unknown bar", []Option{WithBarStyle("nope")}},
		{"unknown spinner", []Option{WithSpinnerStyle("nope")}},
		{"unknown template", []Option{WithTemplateStyle("nope")}},
		{"bad template", []Option{WithTemplate("%<bogus>s")}},
		{"negative width", []Option{WithWidth(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, render.ErrConfig))
		})
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		name   string
		pos    int64
		length int64
		want   float64
	}{
		{"zero position", 0, 0, 0.0},
		{"zero length", 5, 0, 1.0},
		{"zero position bounded", 0, 5, 0.0},
		{"unbounded", 5, Unbounded, 0.0},
		{"half", 5, 10, 0.5},
		{"overshoot", 15, 10, 1.0},
		{"negative position", -5, 10, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustNew(t, WithLength(tt.length))
			p.SetPosition(tt.pos)
			assert.InDelta(t, tt.want, p.Fraction(), 1e-9)
		})
	}
}

func TestRender_Counters(t *testing.T) {
	p := mustNew(t, WithTemplate("%<pos>d/%<len>d %<pct>3d%%"), WithLength(10))

	assert.Equal(t, "0/10   0%", p.Render())
	p.Inc(4)
	p.Inc(1)
	assert.Equal(t, "5/10  50%", p.Render())

	p.SetLength(Unbounded)
	assert.Equal(t, "5/0   0%", p.Render())
}

func TestRender_Bar(t *testing.T) {
	p := mustNew(t, WithTemplate("[%<bar>s]"), WithBarStyle("simple"), WithWidth(4), WithLength(4))

	assert.Equal(t, "[    ]", p.Render())
	p.SetPosition(2)
	assert.Equal(t, "[==  ]", p.Render())
	p.SetPosition(4)
	assert.Equal(t, "[====]", p.Render())
}

func TestRender_SpinnerAdvancesEveryRender(t *testing.T) {
	p := mustNew(t, WithTemplateStyle("spinner"), WithSpinnerStyle("line"), WithMessage("wait"))

	got := []string{p.Render(), p.Render(), p.Render(), p.Render(), p.Render()}
	assert.Equal(t, []string{"/ wait", "- wait", `\ wait`, "| wait", "/ wait"}, got)
	assert.Equal(t, uint64(5), p.Tick())
}

func TestRender_SpinnerFinishFrame(t *testing.T) {
	p, err := NewSpinner("pulse", WithLength(3))
	require.NoError(t, err)

	assert.NotEqual(t, "(*) ", p.Render())
	p.Finish("done")
	assert.Equal(t, "(*) done", p.Render())
}

func TestRender_MessageTruncation(t *testing.T) {
	p := mustNew(t, WithTemplate("%<msg>s"), WithMaxMessageWidth(8))
	p.SetMessage("a very long message")
	assert.Equal(t, "a ver...", p.Render())
}

func TestRender_ETA(t *testing.T) {
	clock := newFakeClock()
	p := mustNew(t, WithTemplate("%<eta>s"), WithLength(100), WithClock(clock.Now))

	// No position change yet: no samples, nothing shown
	assert.Equal(t, "", p.Render())

	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		p.Inc(1)
		p.Render()
	}
	clock.Advance(time.Second)
	p.Inc(1)
	assert.Equal(t, "1m29s", p.Render())

	p.Finish("")
	assert.Equal(t, "", p.Render())
}

func TestRender_ETABelowCutoff(t *testing.T) {
	clock := newFakeClock()
	p := mustNew(t, WithTemplate("%<eta>s"), WithLength(10), WithClock(clock.Now))

	clock.Advance(10 * time.Millisecond)
	p.SetPosition(1)
	p.Render()
	clock.Advance(10 * time.Millisecond)
	p.SetPosition(2)
	assert.Equal(t, "", p.Render())
}

func TestRender_ETAUnbounded(t *testing.T) {
	clock := newFakeClock()
	p := mustNew(t, WithTemplate("%<eta>s"), WithClock(clock.Now))
	clock.Advance(time.Minute)
	p.SetPosition(1)
	assert.Equal(t, "", p.Render())
}

func TestFinish(t *testing.T) {
	t.Run("bounded", func(t *testing.T) {
		p := mustNew(t, WithLength(10))
		p.SetPosition(3)
		p.Finish("ok")
		assert.Equal(t, int64(10), p.Position())
		assert.Equal(t, "ok", p.Message())
		assert.True(t, p.IsFinished())
	})

	t.Run("unbounded latches length", func(t *testing.T) {
		p := mustNew(t)
		p.SetPosition(7)
		p.Finish("")
		assert.Equal(t, int64(7), p.Length())
		assert.True(t, p.IsFinished())
		assert.InDelta(t, 1.0, p.Fraction(), 1e-9)
	})
}

func TestClear(t *testing.T) {
	p := mustNew(t, WithLength(5), WithMessage("busy"))
	p.Clear()
	assert.True(t, p.IsHidden())
	assert.False(t, p.IsVisible())
	assert.True(t, p.IsFinished())
	assert.Equal(t, "", p.Message())
}

func TestSetHidden(t *testing.T) {
	p := mustNew(t, WithHidden(true))
	assert.True(t, p.IsHidden())
	p.SetHidden(false)
	assert.True(t, p.IsVisible())
}

func TestNewBar(t *testing.T) {
	p, err := NewBar("fine", 10, WithLength(100))
	require.NoError(t, err)
	assert.Equal(t, 10, p.Bar().Width())
	assert.Equal(t, 90, p.Bar().Resolution())

	_, err = NewBar("missing", 10)
	assert.Error(t, err)
}

func TestProgress_ConcurrentProducers(t *testing.T) {
	p := mustNew(t, WithTemplate("%<bar>s %<pos>d/%<len>d %<msg>s"), WithLength(1000))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Inc(1)
				p.SetMessage("step")
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				_ = p.Render()
			}
		}
	}()

	wg.Wait()
	close(done)
	assert.Equal(t, int64(1000), p.Position())
	assert.True(t, p.IsFinished())
}
