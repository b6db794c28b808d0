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
	"errors"

	"dirpx.dev/standin/apis"
	uref "dirpx.dev/standin/utils/reflect"
)

var (
	// ErrCallLimitExceeded is returned by CallLimit once the limit is used up.
	ErrCallLimitExceeded = errors.New("standin(decorator): call limit exceeded")
	// ErrCircuitOpen is returned by CircuitBreaker while the circuit is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// link is implemented by every wrapper in this package.
type link interface {
	inner() any
}

// As walks a decorator chain from v inward and returns the first layer of
// type W, in the manner of errors.As. v is usually the value a registry
// lookup returned.
//
//	timed, ok := decorator.As[*decorator.Timed[Req, Resp]](v)
func As[W any](v any) (W, bool) {
	for v != nil {
		if w, ok := v.(W); ok {
			return w, true
		}
		l, ok := v.(link)
		if !ok {
			break
		}
		v = l.inner()
	}
	var zero W
	return zero, false
}

// Layers names every layer of the chain starting at v, outermost first,
// ending with the raw stand-in:
//
//	[decorator.Timed decorator.Retried fake.Func]
func Layers(v any) []string {
	var out []string
	for v != nil {
		out = append(out, uref.TypeName(v))
		l, ok := v.(link)
		if !ok {
			break
		}
		v = l.inner()
	}
	return out
}

// clearNext forwards ClearCalls down the chain.
func clearNext(next any) {
	if c, ok := next.(apis.CallClearer); ok {
		c.ClearCalls()
	}
}

// resetNext forwards Reset down the chain, falling back to ClearCalls.
func resetNext(next any) {
	switch x := next.(type) {
	case apis.Resetter:
		x.Reset()
	case apis.CallClearer:
		x.ClearCalls()
	}
}

// layer is embedded by every wrapper and carries the wrapped callable.
type layer[A, R any] struct {
	next apis.Callable[A, R]
}

// Unwrap returns the wrapped callable.
func (l layer[A, R]) Unwrap() apis.Callable[A, R] { return l.next }

func (l layer[A, R]) inner() any { return l.next }
