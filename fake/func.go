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

package fake

import (
	"context"
	"slices"
	"sync"

	"dirpx.dev/standin/apis"
)

// Func is a function stand-in that records every call and answers with a
// configurable behavior.
type Func[A, R any] struct {
	mu      sync.Mutex
	initial apis.Func[A, R]
	handler apis.Func[A, R]
	once    []apis.Func[A, R]
	calls   []A
}

// Ensure Func implements the stand-in contracts.
var (
	_ apis.Callable[int, int] = (*Func[int, int])(nil)
	_ apis.CallClearer        = (*Func[int, int])(nil)
	_ apis.Resetter           = (*Func[int, int])(nil)
)

// NewFunc returns a Func answering with fn. A nil fn returns the zero R.
// Reset returns the Func to fn.
func NewFunc[A, R any](fn func(ctx context.Context, args A) (R, error)) *Func[A, R] {
	f := &Func[A, R]{initial: fn}
	f.handler = fn
	return f
}

// Call records args and answers with the next queued one-shot behavior, or
// the configured handler.
func (f *Func[A, R]) Call(ctx context.Context, args A) (R, error) {
	f.mu.Lock()
	f.calls = append(f.calls, args)
	h := f.handler
	if len(f.once) > 0 {
		h, f.once = f.once[0], f.once[1:]
	}
	f.mu.Unlock()

	if h == nil {
		var zero R
		return zero, nil
	}
	return h(ctx, args)
}

// Handle replaces the behavior with fn.
func (f *Func[A, R]) Handle(fn func(ctx context.Context, args A) (R, error)) *Func[A, R] {
	f.mu.Lock()
	f.handler = fn
	f.mu.Unlock()
	return f
}

// Returns makes every call answer r.
func (f *Func[A, R]) Returns(r R) *Func[A, R] {
	return f.Handle(func(context.Context, A) (R, error) { return r, nil })
}

// Fails makes every call fail with err.
func (f *Func[A, R]) Fails(err error) *Func[A, R] {
	return f.Handle(func(context.Context, A) (R, error) {
		var zero R
		return zero, err
	})
}

// ReturnsOnce queues r as the answer for a single upcoming call.
func (f *Func[A, R]) ReturnsOnce(r R) *Func[A, R] {
	f.mu.Lock()
	f.once = append(f.once, func(context.Context, A) (R, error) { return r, nil })
	f.mu.Unlock()
	return f
}

// FailsOnce queues err as the failure of a single upcoming call.
func (f *Func[A, R]) FailsOnce(err error) *Func[A, R] {
	f.mu.Lock()
	f.once = append(f.once, func(context.Context, A) (R, error) {
		var zero R
		return zero, err
	})
	f.mu.Unlock()
	return f
}

// Calls returns the recorded arguments in call order.
func (f *Func[A, R]) Calls() []A {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CallCount returns the number of recorded calls.
func (f *Func[A, R]) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// LastCall returns the arguments of the most recent call.
func (f *Func[A, R]) LastCall() (A, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		var zero A
		return zero, false
	}
	return f.calls[len(f.calls)-1], true
}

// ClearCalls forgets recorded calls and keeps the configured behavior.
func (f *Func[A, R]) ClearCalls() {
	f.mu.Lock()
	f.calls = nil
	f.mu.Unlock()
}

// Reset forgets recorded calls, drops queued one-shot behaviors and returns
// to the behavior the Func was created with.
func (f *Func[A, R]) Reset() {
	f.mu.Lock()
	f.calls = nil
	f.once = nil
	f.handler = f.initial
	f.mu.Unlock()
}
