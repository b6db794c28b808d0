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
	"fmt"
	"strconv"
	"sync"

	"dirpx.dev/standin/apis"
)

// CallLimit delegates calls 1..n. Call n+1 and every later call fails with
// ErrCallLimitExceeded without delegating. A negative n is treated as 0.
func CallLimit[A, R any](n int) apis.Decorator[apis.Callable[A, R]] {
	if n < 0 {
		n = 0
	}
	return apis.Decorator[apis.Callable[A, R]]{
		Name: "callLimit(" + strconv.Itoa(n) + ")",
		Wrap: func(next apis.Callable[A, R]) apis.Callable[A, R] {
			return &Limited[A, R]{layer: layer[A, R]{next: next}, limit: n}
		},
	}
}

// Limited is the layer produced by CallLimit.
type Limited[A, R any] struct {
	layer[A, R]
	limit int

	mu    sync.Mutex
	count int
}

// Call delegates while the limit allows it.
func (l *Limited[A, R]) Call(ctx context.Context, args A) (R, error) {
	l.mu.Lock()
	if l.count >= l.limit {
		l.mu.Unlock()
		var zero R
		return zero, fmt.Errorf("%w: limit %d", ErrCallLimitExceeded, l.limit)
	}
	l.count++
	l.mu.Unlock()
	return l.next.Call(ctx, args)
}

// Count returns the number of delegated calls.
func (l *Limited[A, R]) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Limit returns the configured limit.
func (l *Limited[A, R]) Limit() int { return l.limit }

// ClearCalls forwards down the chain; the used-up budget is behavior, not
// history, and survives.
func (l *Limited[A, R]) ClearCalls() { clearNext(l.next) }

// Reset restores the full budget and resets the chain.
func (l *Limited[A, R]) Reset() {
	l.mu.Lock()
	l.count = 0
	l.mu.Unlock()
	resetNext(l.next)
}
