// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package display

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tikibar/internal/metrics"
	"github.com/jeranaias/tikibar/internal/progress"
)

type staticLine struct {
	text   string
	hidden atomic.Bool
}

func (s *staticLine) Render() string  { return s.text }
func (s *staticLine) IsVisible() bool { return !s.hidden.Load() }

type panicLine struct{}

func (panicLine) Render() string  { panic("boom") }
func (panicLine) IsVisible() bool { return true }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderIteration_SingleBar(t *testing.T) {
	var buf bytes.Buffer
	d := newDisplay(WithOutput(&buf))

	p, err := progress.New(
		progress.WithTemplate("[%<bar>s] %<pos>d/%<len>d"),
		progress.WithBarStyle("simple"),
		progress.WithWidth(4),
		progress.WithLength(10),
	)
	require.NoError(t, err)
	p.SetPosition(5)
	d.Add(p)

	running, err := d.renderIteration()
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, "\r[==  ] 5/10\x1b[K\n", buf.String())

	buf.Reset()
	_, err = d.renderIteration()
	require.NoError(t, err)
	assert.Equal(t, "\x1b[A\r[==  ] 5/10\x1b[K\n", buf.String())
}

func TestRenderIteration_PendingLinesFirst(t *testing.T) {
	var buf bytes.Buffer
	d := newDisplay(WithOutput(&buf))
	d.Add(&staticLine{text: "bar"})

	_, err := d.renderIteration()
	require.NoError(t, err)
	buf.Reset()

	d.Puts("one", "two\nthree")
	_, err = d.renderIteration()
	require.NoError(t, err)
	assert.Equal(t, "\x1b[A\x1b[Kone\n\x1b[Ktwo\n\x1b[Kthree\n\rbar\x1b[K\n", buf.String())

	// Pending lines are printed once
	buf.Reset()
	_, err = d.renderIteration()
	require.NoError(t, err)
	assert.Equal(t, "\x1b[A\rbar\x1b[K\n", buf.String())
}

func TestRenderIteration_OrderAndHidden(t *testing.T) {
	var buf bytes.Buffer
	d := newDisplay(WithOutput(&buf))
	a := &staticLine{text: "a"}
	b := &staticLine{text: "b"}
	c := &staticLine{text: "c"}
	d.Add(a)
	d.Add(b)
	d.Add(c)
	b.hidden.Store(true)

	_, err := d.renderIteration()
	require.NoError(t, err)
	assert.Equal(t, "\ra\x1b[K\n\rc\x1b[K\n", buf.String())
}

func TestRenderIteration_RemoveBlanksOrphans(t *testing.T) {
	var buf bytes.Buffer
	d := newDisplay(WithOutput(&buf))
	d.Add(&staticLine{text: "a"})
	hb := d.Add(&staticLine{text: "b"})
	hc := d.Add(&staticLine{text: "c"})

	_, err := d.renderIteration()
	require.NoError(t, err)
	buf.Reset()

	assert.True(t, d.Remove(hb))
	assert.True(t, d.Remove(hc))
	assert.False(t, d.Remove(hc))
	assert.Equal(t, 1, d.Len())

	_, err = d.renderIteration()
	require.NoError(t, err)
	want := strings.Repeat("\x1b[A", 3) + "\ra\x1b[K\n" + "\x1b[K\n\x1b[K\n" + "\x1b[A\x1b[A"
	assert.Equal(t, want, buf.String())
}

func TestRenderIteration_PanicIsReported(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	d := newDisplay(WithOutput(&buf), WithMetrics(metrics.NewRecorder(reg)))
	d.Add(panicLine{})

	running, err := d.renderIteration()
	require.Error(t, err)
	assert.False(t, running)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, "\r\x1b[K", buf.String())
}

func TestRenderIteration_WriteError(t *testing.T) {
	d := newDisplay(WithOutput(failingWriter{}))
	d.Add(&staticLine{text: "a"})

	running, err := d.renderIteration()
	require.Error(t, err)
	assert.False(t, running)
	assert.Contains(t, err.Error(), "closed")
}

func TestRefresh(t *testing.T) {
	d := newDisplay()
	assert.Equal(t, DefaultRefresh, d.Refresh())

	d.SetRefresh(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, d.Refresh())

	d.SetRefresh(0)
	assert.Equal(t, 10*time.Millisecond, d.Refresh())

	d = newDisplay(WithRefresh(time.Second))
	assert.Equal(t, time.Second, d.Refresh())
}

func TestHandleIDsAreUnique(t *testing.T) {
	d := newDisplay()
	a := d.Add(&staticLine{})
	b := d.Add(&staticLine{})
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestJoin_DrawsFinalFrame(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithOutput(&buf), WithRefresh(time.Hour))

	p, err := progress.New(progress.WithTemplate("%<pos>d/%<len>d"), progress.WithLength(3))
	require.NoError(t, err)
	d.Add(p)
	p.Finish("")

	require.NoError(t, d.Join())
	assert.Equal(t, "\r3/3\x1b[K\n", buf.String())

	// Join is idempotent
	require.NoError(t, d.Finish())
}

func TestFinishAndClear(t *testing.T) {
	var buf bytes.Buffer
	d := newDisplay(WithOutput(&buf))
	d.Add(&staticLine{text: "a"})
	_, err := d.renderIteration()
	require.NoError(t, err)
	buf.Reset()

	go d.run()
	require.NoError(t, d.FinishAndClear())
	assert.Equal(t, "\x1b[A\x1b[K\n\x1b[A", buf.String())
	assert.Equal(t, 0, d.Len())
}

func TestJoin_ReturnsLoopError(t *testing.T) {
	d := New(WithOutput(failingWriter{}), WithRefresh(time.Millisecond))
	d.Add(&staticLine{text: "a"})

	select {
	case <-d.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("render loop did not stop")
	}
	err := d.Join()
	require.Error(t, err)
	assert.Equal(t, err, d.Join())
}

func TestDisplay_ConcurrentProducers(t *testing.T) {
	var mu sync.Mutex
	var buf bytes.Buffer
	d := New(WithOutput(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.Write(p)
	})), WithRefresh(time.Millisecond))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := progress.New(progress.WithLength(50))
			if !assert.NoError(t, err) {
				return
			}
			h := d.Add(p)
			for j := 0; j < 50; j++ {
				p.Inc(1)
				d.Puts("tick")
			}
			d.Remove(h)
		}()
	}
	wg.Wait()

	require.NoError(t, d.Join())
	assert.Equal(t, 0, d.Len())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 400, strings.Count(buf.String(), "tick"))
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
