// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics exposes Prometheus collectors for the render loop.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder records render loop activity. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	frames       prometheus.Counter
	frameLines   prometheus.Gauge
	frameSeconds prometheus.Histogram
	failures     *prometheus.CounterVec
	linesFlushed prometheus.Counter
}

// NewRecorder registers the tikibar collectors with reg. Passing
// prometheus.DefaultRegisterer exposes them through Handler.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		frames: factory.NewCounter(prometheus.CounterOpts{
			Name: "tikibar_frames_total",
			Help: "Total number of frames written to the terminal.",
		}),
		frameLines: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tikibar_frame_lines",
			Help: "Number of indicator lines in the most recent frame.",
		}),
		frameSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tikibar_frame_render_seconds",
			Help:    "Histogram of time spent composing and writing one frame.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tikibar_render_failures_total",
			Help: "Total number of render loop failures, labeled by cause.",
		}, []string{"cause"}),
		linesFlushed: factory.NewCounter(prometheus.CounterOpts{
			Name: "tikibar_pending_lines_flushed_total",
			Help: "Total number of one-shot lines printed above the indicators.",
		}),
	}
}

// ObserveFrame records one written frame.
func (r *Recorder) ObserveFrame(lines, flushed int, took time.Duration) {
	if r == nil {
		return
	}
	r.frames.Inc()
	r.frameLines.Set(float64(lines))
	r.frameSeconds.Observe(took.Seconds())
	if flushed > 0 {
		r.linesFlushed.Add(float64(flushed))
	}
}

// ObserveFailure records a render loop failure. cause is "panic" or
// "write".
func (r *Recorder) ObserveFailure(cause string) {
	if r == nil {
		return
	}
	r.failures.WithLabelValues(cause).Inc()
}

// Handler returns an http.Handler for exposing Prometheus metrics from
// gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
