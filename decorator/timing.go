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

package decorator

import (
	"context"
	"slices"
	"sync"
	"time"

	"dirpx.dev/standin/apis"
)

// Timing measures the wall-clock duration of every call, including any time
// the call spends blocked, and keeps the observed durations locally. When
// tracker is non-nil and trackerID is non-empty each call is also reported
// as (trackerID, duration, didError).
//
// A call abandoned by its caller (the wrapped callable returned because ctx
// was cancelled or timed out) is not reported to the tracker.
func Timing[A, R any](tracker apis.Tracker, trackerID string, now apis.Clock) apis.Decorator[apis.Callable[A, R]] {
	return apis.Decorator[apis.Callable[A, R]]{
		Name: "timing(" + trackerID + ")",
		Wrap: func(next apis.Callable[A, R]) apis.Callable[A, R] {
			return &Timed[A, R]{layer: layer[A, R]{next: next}, tracker: tracker, id: trackerID, now: now}
		},
	}
}

// Timed is the layer produced by Timing.
type Timed[A, R any] struct {
	layer[A, R]
	tracker apis.Tracker
	id      string
	now     apis.Clock

	mu        sync.Mutex
	durations []time.Duration
}

// Call times the delegated call. Errors pass through unchanged.
func (t *Timed[A, R]) Call(ctx context.Context, args A) (R, error) {
	start := t.now.Now()
	r, err := t.next.Call(ctx, args)
	d := t.now.Now().Sub(start)

	t.mu.Lock()
	t.durations = append(t.durations, d)
	t.mu.Unlock()

	if err != nil && ctx.Err() != nil {
		return r, err
	}
	if t.tracker != nil && t.id != "" {
		t.tracker.TrackPerformance(t.id, d, err != nil)
	}
	return r, err
}

// Durations returns the observed durations in call order.
func (t *Timed[A, R]) Durations() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.durations)
}

// ClearCalls forgets observed durations here and down the chain.
func (t *Timed[A, R]) ClearCalls() {
	t.mu.Lock()
	t.durations = nil
	t.mu.Unlock()
	clearNext(t.next)
}

// Reset forgets observed durations and resets the chain.
func (t *Timed[A, R]) Reset() {
	t.mu.Lock()
	t.durations = nil
	t.mu.Unlock()
	resetNext(t.next)
}
