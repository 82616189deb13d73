// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"math"
	"time"
)

// DefaultETACapacity is the number of samples an ETA averages over.
const DefaultETACapacity = 10

// Sample divisor bounds; keep a tiny or negative step from blowing up.
const (
	minStepDelta = 0.1
	maxStepDelta = 999999.9
)

// ETA estimates time per step as a moving average over a ring buffer of
// samples. It is not safe for concurrent use; the owning Progress
// serializes access.
type ETA struct {
	buf     []time.Duration
	next    int
	start   time.Time
	initial int64
	started bool
}

// NewETA returns an estimator averaging over capacity samples. A capacity
// of zero or less uses DefaultETACapacity.
func NewETA(capacity int) *ETA {
	if capacity <= 0 {
		capacity = DefaultETACapacity
	}
	return &ETA{buf: make([]time.Duration, 0, capacity)}
}

// Step records that value was reached at now. The first call fixes the
// baseline; every call, including the first, adds one sample.
func (e *ETA) Step(now time.Time, value int64) {
	if !e.started {
		e.start = now
		e.initial = value
		e.started = true
	}

	var sample time.Duration
	if value != 0 {
		delta := clampFloat(float64(value-e.initial), minStepDelta, maxStepDelta)
		sample = time.Duration(float64(now.Sub(e.start)) / delta)
	}

	if len(e.buf) < cap(e.buf) {
		e.buf = append(e.buf, sample)
	} else {
		e.buf[e.next%cap(e.buf)] = sample
	}
	e.next++
}

// TimePerStep returns the mean of the buffered samples, or zero if no step
// has been recorded.
func (e *ETA) TimePerStep() time.Duration {
	if len(e.buf) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range e.buf {
		sum += d
	}
	return sum / time.Duration(len(e.buf))
}

// Estimate returns the expected time to cover remaining more steps. The
// result saturates at the largest Duration instead of wrapping.
func (e *ETA) Estimate(remaining int64) time.Duration {
	tps := e.TimePerStep()
	if tps <= 0 || remaining <= 0 {
		return 0
	}
	if remaining > math.MaxInt64/int64(tps) {
		return time.Duration(math.MaxInt64)
	}
	return tps * time.Duration(remaining)
}

// Start returns the time of the first Step, or the zero time.
func (e *ETA) Start() time.Time { return e.start }

// Samples returns how many samples are currently buffered.
func (e *ETA) Samples() int { return len(e.buf) }

// Capacity returns the ring buffer size.
func (e *ETA) Capacity() int { return cap(e.buf) }

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
