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
	"time"

	"dirpx.dev/standin/apis"
)

// Delay blocks for d before delegating. Cancelling ctx during the wait
// returns the context error without delegating.
func Delay[A, R any](d time.Duration) apis.Decorator[apis.Callable[A, R]] {
	return apis.Decorator[apis.Callable[A, R]]{
		Name: "delay(" + d.String() + ")",
		Wrap: func(next apis.Callable[A, R]) apis.Callable[A, R] {
			return &Delayed[A, R]{layer: layer[A, R]{next: next}, d: d}
		},
	}
}

// Delayed is the layer produced by Delay.
type Delayed[A, R any] struct {
	layer[A, R]
	d time.Duration
}

// Call waits, then delegates.
func (w *Delayed[A, R]) Call(ctx context.Context, args A) (R, error) {
	if w.d > 0 {
		t := time.NewTimer(w.d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			var zero R
			return zero, ctx.Err()
		case <-t.C:
		}
	}
	return w.next.Call(ctx, args)
}

// Delay returns the configured delay.
func (w *Delayed[A, R]) Delay() time.Duration { return w.d }

// ClearCalls forwards down the chain.
func (w *Delayed[A, R]) ClearCalls() { clearNext(w.next) }

// Reset forwards down the chain.
func (w *Delayed[A, R]) Reset() { resetNext(w.next) }
