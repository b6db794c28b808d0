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
	"log/slog"
	"slices"
	"sync"

	"dirpx.dev/standin/apis"
)

// Logging records the arguments of each call before delegating and emits a
// debug record labelled with label. A nil logger discards records; the
// argument history is kept either way.
func Logging[A, R any](label string, logger *slog.Logger) apis.Decorator[apis.Callable[A, R]] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return apis.Decorator[apis.Callable[A, R]]{
		Name: "logging(" + label + ")",
		Wrap: func(next apis.Callable[A, R]) apis.Callable[A, R] {
			return &Logged[A, R]{layer: layer[A, R]{next: next}, label: label, logger: logger}
		},
	}
}

// Logged is the layer produced by Logging.
type Logged[A, R any] struct {
	layer[A, R]
	label  string
	logger *slog.Logger

	mu    sync.Mutex
	calls []A
}

// Call records args, logs them and delegates.
func (l *Logged[A, R]) Call(ctx context.Context, args A) (R, error) {
	l.mu.Lock()
	l.calls = append(l.calls, args)
	l.mu.Unlock()

	l.logger.DebugContext(ctx, "stand-in called", slog.String("label", l.label), slog.Any("args", args))
	return l.next.Call(ctx, args)
}

// Label returns the label given to Logging.
func (l *Logged[A, R]) Label() string { return l.label }

// Calls returns the recorded arguments in call order.
func (l *Logged[A, R]) Calls() []A {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.calls)
}

// ClearCalls forgets recorded arguments here and down the chain.
func (l *Logged[A, R]) ClearCalls() {
	l.mu.Lock()
	l.calls = nil
	l.mu.Unlock()
	clearNext(l.next)
}

// Reset forgets recorded arguments and resets the chain.
func (l *Logged[A, R]) Reset() {
	l.mu.Lock()
	l.calls = nil
	l.mu.Unlock()
	resetNext(l.next)
}
