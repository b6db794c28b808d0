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
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"dirpx.dev/standin/apis"
)

// DefaultCacheSize is used by Set.Cache when no size is configured.
const DefaultCacheSize = 128

// Option configures a Set.
type Option func(*deps)

type deps struct {
	tracker    apis.Tracker
	hooks      apis.HookRegistrar
	logger     *slog.Logger
	now        apis.Clock
	retryPause time.Duration
	cacheSize  int
	tracer     trace.Tracer
}

// WithTracker sets the tracker that Timing reports to.
func WithTracker(t apis.Tracker) Option { return func(d *deps) { d.tracker = t } }

// WithHooks sets where AutoReset registers its hooks.
func WithHooks(h apis.HookRegistrar) Option { return func(d *deps) { d.hooks = h } }

// WithLogger sets the logger used by Logging.
func WithLogger(l *slog.Logger) Option { return func(d *deps) { d.logger = l } }

// WithClock sets the clock used by Timing and CircuitBreaker.
func WithClock(c apis.Clock) Option { return func(d *deps) { d.now = c } }

// WithRetryPause sets the pause between Retry attempts.
func WithRetryPause(p time.Duration) Option { return func(d *deps) { d.retryPause = p } }

// WithCacheSize sets the size used by Set.Cache for a non-positive size.
func WithCacheSize(n int) Option { return func(d *deps) { d.cacheSize = n } }

// WithTracer sets the tracer used by Tracing.
func WithTracer(t trace.Tracer) Option { return func(d *deps) { d.tracer = t } }

// Set binds the type parameters and shared dependencies once so call sites
// read like a decorator list:
//
//	d := decorator.For[string, int](decorator.WithTracker(tr))
//	decorators := []apis.Decorator[apis.Callable[string, int]]{
//		d.Logging("svc"), d.Timing("svc"), d.Retry(2),
//	}
type Set[A, R any] struct {
	d deps
}

// For returns a Set for callables taking A and returning R.
func For[A, R any](opts ...Option) Set[A, R] {
	d := deps{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	if d.cacheSize < 1 {
		d.cacheSize = DefaultCacheSize
	}
	return Set[A, R]{d: d}
}

// Logging is Logging with the bound logger.
func (s Set[A, R]) Logging(label string) apis.Decorator[apis.Callable[A, R]] {
	return Logging[A, R](label, s.d.logger)
}

// Timing is Timing reporting to the bound tracker with the bound clock.
func (s Set[A, R]) Timing(trackerID string) apis.Decorator[apis.Callable[A, R]] {
	return Timing[A, R](s.d.tracker, trackerID, s.d.now)
}

// CallLimit is CallLimit.
func (s Set[A, R]) CallLimit(n int) apis.Decorator[apis.Callable[A, R]] {
	return CallLimit[A, R](n)
}

// Retry is Retry with the bound retry pause.
func (s Set[A, R]) Retry(maxRetries int) apis.Decorator[apis.Callable[A, R]] {
	return Retry[A, R](maxRetries, s.d.retryPause)
}

// Cache is Cache, using the bound default size when size is not positive.
func (s Set[A, R]) Cache(size int) apis.Decorator[apis.Callable[A, R]] {
	if size < 1 {
		size = s.d.cacheSize
	}
	return Cache[A, R](size)
}

// Delay is Delay.
func (s Set[A, R]) Delay(d time.Duration) apis.Decorator[apis.Callable[A, R]] {
	return Delay[A, R](d)
}

// AutoReset is AutoReset registering with the bound hooks.
func (s Set[A, R]) AutoReset() apis.Decorator[apis.Callable[A, R]] {
	return AutoReset[A, R](s.d.hooks)
}

// CircuitBreaker is CircuitBreaker with the bound clock.
func (s Set[A, R]) CircuitBreaker(failureThreshold int, resetTimeout time.Duration) apis.Decorator[apis.Callable[A, R]] {
	return CircuitBreaker[A, R](failureThreshold, resetTimeout, s.d.now)
}

// Tracing is Tracing with the bound tracer.
func (s Set[A, R]) Tracing(spanName string) apis.Decorator[apis.Callable[A, R]] {
	return Tracing[A, R](s.d.tracer, spanName)
}
