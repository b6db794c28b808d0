/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package perf accumulates per-identifier call statistics reported by
// timing-aware decorators.
package perf

import (
	"math"
	"sync"
	"time"

	"dirpx.dev/standin/apis"
)

// CallMetrics is the accumulated view of all calls reported for one id.
type CallMetrics struct {
	Count       int64
	TotalTime   time.Duration
	AverageTime time.Duration
	MaxTime     time.Duration
	// MinTime starts at the largest representable duration so the first call
	// always lowers it.
	MinTime    time.Duration
	ErrorCount int64
	LastCallAt time.Time
}

// Rollup aggregates CallMetrics across all ids.
type Rollup struct {
	TotalCalls  int64
	AverageTime time.Duration
	TotalErrors int64
	// Slowest is the id with the highest average time ("" if none).
	Slowest string
	// Fastest is the id with the lowest average time among ids with at least
	// one call ("" if none).
	Fastest string
}

// Data is an ordered copy of a tracker's full data set.
type Data struct {
	ids     []string
	metrics map[string]CallMetrics
}

// Len returns the number of ids in d.
func (d Data) Len() int { return len(d.ids) }

// Tracker is a concurrency-safe in-memory store of CallMetrics keyed by id.
type Tracker struct {
	mu      sync.Mutex
	now     apis.Clock
	ids     []string
	metrics map[string]*CallMetrics
}

// Ensure Tracker implements apis.Tracker.
var _ apis.Tracker = (*Tracker)(nil)

// New constructs an empty Tracker. A nil clock means time.Now.
func New(now apis.Clock) *Tracker {
	return &Tracker{now: now, metrics: make(map[string]*CallMetrics)}
}

// TrackPerformance records one call of id. The metrics record is created on
// the first call.
func (t *Tracker) TrackPerformance(id string, d time.Duration, didError bool) {
	at := t.now.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.metrics[id]
	if !ok {
		m = &CallMetrics{MinTime: time.Duration(math.MaxInt64)}
		t.metrics[id] = m
		t.ids = append(t.ids, id)
	}
	m.Count++
	m.TotalTime += d
	m.AverageTime = m.TotalTime / time.Duration(m.Count)
	if d > m.MaxTime {
		m.MaxTime = d
	}
	if d < m.MinTime {
		m.MinTime = d
	}
	if didError {
		m.ErrorCount++
	}
	m.LastCallAt = at
}

// Metrics returns a copy of the metrics for id.
func (t *Tracker) Metrics(id string) (CallMetrics, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.metrics[id]
	if !ok {
		return CallMetrics{}, false
	}
	return *m, true
}

// All returns a copy of every metrics record keyed by id.
func (t *Tracker) All() map[string]CallMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]CallMetrics, len(t.metrics))
	for id, m := range t.metrics {
		out[id] = *m
	}
	return out
}

// IDs returns tracked ids in first-report order.
func (t *Tracker) IDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.ids...)
}

// Rollup computes aggregate statistics over all ids.
func (t *Tracker) Rollup() Rollup {
	t.mu.Lock()
	defer t.mu.Unlock()

	var (
		r                  Rollup
		total              time.Duration
		slowAvg, fastAvg   time.Duration
		haveSlow, haveFast bool
	)
	for _, id := range t.ids {
		m := t.metrics[id]
		r.TotalCalls += m.Count
		r.TotalErrors += m.ErrorCount
		total += m.TotalTime

		if !haveSlow || m.AverageTime > slowAvg {
			r.Slowest, slowAvg, haveSlow = id, m.AverageTime, true
		}
		if m.Count > 0 && (!haveFast || m.AverageTime < fastAvg) {
			r.Fastest, fastAvg, haveFast = id, m.AverageTime, true
		}
	}
	if r.TotalCalls > 0 {
		r.AverageTime = total / time.Duration(r.TotalCalls)
	}
	return r
}

// Export returns a copy of the full data set for later Import.
func (t *Tracker) Export() Data {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := Data{
		ids:     append([]string(nil), t.ids...),
		metrics: make(map[string]CallMetrics, len(t.metrics)),
	}
	for id, m := range t.metrics {
		d.metrics[id] = *m
	}
	return d
}

// Import replaces the full data set with d in one step.
func (t *Tracker) Import(d Data) {
	metrics := make(map[string]*CallMetrics, len(d.metrics))
	for id, m := range d.metrics {
		m := m
		metrics[id] = &m
	}
	ids := append([]string(nil), d.ids...)

	t.mu.Lock()
	t.ids, t.metrics = ids, metrics
	t.mu.Unlock()
}

// Reset drops all metrics.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.ids, t.metrics = nil, make(map[string]*CallMetrics)
	t.mu.Unlock()
}
