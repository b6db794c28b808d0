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

	"dirpx.dev/standin/apis"
)

// AutoReset registers a hook with hooks that clears the wrapped callable's
// call history at every test-case boundary. The hook is registered when the
// decorator is applied, not when the stand-in is called. A nil hooks makes
// AutoReset a plain pass-through.
func AutoReset[A, R any](hooks apis.HookRegistrar) apis.Decorator[apis.Callable[A, R]] {
	return apis.Decorator[apis.Callable[A, R]]{
		Name: "autoReset",
		Wrap: func(next apis.Callable[A, R]) apis.Callable[A, R] {
			w := &AutoResetting[A, R]{layer: layer[A, R]{next: next}}
			if hooks != nil {
				hooks.AddResetHook(w.ClearCalls)
			}
			return w
		},
	}
}

// AutoResetting is the layer produced by AutoReset.
type AutoResetting[A, R any] struct {
	layer[A, R]
}

// Call delegates.
func (w *AutoResetting[A, R]) Call(ctx context.Context, args A) (R, error) {
	return w.next.Call(ctx, args)
}

// ClearCalls forwards down the chain.
func (w *AutoResetting[A, R]) ClearCalls() { clearNext(w.next) }

// Reset forwards down the chain.
func (w *AutoResetting[A, R]) Reset() { resetNext(w.next) }
