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
	"fmt"
	"maps"
	"slices"

	"dirpx.dev/standin/apis"
)

// API is an API-surface stand-in: a fixed set of named methods sharing one
// argument and result type. Each method is an independent Callable, so each
// can carry its own decorators. An API is immutable after construction.
type API[A, R any] struct {
	methods map[string]apis.Callable[A, R]
}

// Ensure API implements the stand-in contracts.
var (
	_ apis.CallClearer = (*API[int, int])(nil)
	_ apis.Resetter    = (*API[int, int])(nil)
)

// NewAPI returns an API exposing a copy of methods.
func NewAPI[A, R any](methods map[string]apis.Callable[A, R]) *API[A, R] {
	m := make(map[string]apis.Callable[A, R], len(methods))
	maps.Copy(m, methods)
	return &API[A, R]{methods: m}
}

// Method returns the method called name.
func (a *API[A, R]) Method(name string) (apis.Callable[A, R], bool) {
	m, ok := a.methods[name]
	return m, ok
}

// Methods returns the method names in sorted order.
func (a *API[A, R]) Methods() []string {
	return slices.Sorted(maps.Keys(a.methods))
}

// Call invokes the method called name.
func (a *API[A, R]) Call(ctx context.Context, name string, args A) (R, error) {
	m, ok := a.methods[name]
	if !ok {
		var zero R
		return zero, fmt.Errorf("%w: %q", ErrNoMethod, name)
	}
	return m.Call(ctx, args)
}

// ClearCalls clears the call history of every method.
func (a *API[A, R]) ClearCalls() {
	for _, m := range a.methods {
		if c, ok := m.(apis.CallClearer); ok {
			c.ClearCalls()
		}
	}
}

// Reset resets every method.
func (a *API[A, R]) Reset() {
	for _, m := range a.methods {
		switch x := m.(type) {
		case apis.Resetter:
			x.Reset()
		case apis.CallClearer:
			x.ClearCalls()
		}
	}
}
