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
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"dirpx.dev/standin/apis"
)

// Retry re-invokes the wrapped callable up to maxRetries additional times
// after a failure, pausing for pause between attempts. The first success
// satisfies the call; if every attempt fails the last underlying error is
// returned unchanged. A cancelled ctx ends the pause early and returns the
// context error.
func Retry[A, R any](maxRetries int, pause time.Duration) apis.Decorator[apis.Callable[A, R]] {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if pause < 0 {
		pause = 0
	}
	return apis.Decorator[apis.Callable[A, R]]{
		Name: "retry(" + strconv.Itoa(maxRetries) + ")",
		Wrap: func(next apis.Callable[A, R]) apis.Callable[A, R] {
			return &Retried[A, R]{layer: layer[A, R]{next: next}, maxRetries: maxRetries, pause: pause}
		},
	}
}

// Retried is the layer produced by Retry.
type Retried[A, R any] struct {
	layer[A, R]
	maxRetries int
	pause      time.Duration

	mu       sync.Mutex
	attempts int
}

// Call delegates until an attempt succeeds or the retries are used up.
func (r *Retried[A, R]) Call(ctx context.Context, args A) (R, error) {
	var lastErr error
	op := func() (R, error) {
		r.mu.Lock()
		r.attempts++
		r.mu.Unlock()

		res, err := r.next.Call(ctx, args)
		if err != nil {
			lastErr = err
		}
		return res, err
	}

	res, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(&backoff.ConstantBackOff{Interval: r.pause}),
		backoff.WithMaxTries(uint(r.maxRetries+1)),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil && lastErr != nil && ctx.Err() == nil {
		// backoff may wrap or replace the operation error; callers see the
		// error the stand-in actually produced.
		err = lastErr
	}
	return res, err
}

// Attempts returns the number of delegated attempts across all calls.
func (r *Retried[A, R]) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

// ClearCalls forgets the attempt count here and down the chain.
func (r *Retried[A, R]) ClearCalls() {
	r.mu.Lock()
	r.attempts = 0
	r.mu.Unlock()
	clearNext(r.next)
}

// Reset forgets the attempt count and resets the chain.
func (r *Retried[A, R]) Reset() {
	r.mu.Lock()
	r.attempts = 0
	r.mu.Unlock()
	resetNext(r.next)
}
