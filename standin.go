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

package standin

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"dirpx.dev/standin/apis"
	"dirpx.dev/standin/builder"
	"dirpx.dev/standin/config"
	"dirpx.dev/standin/decorator"
	"dirpx.dev/standin/perf"
	"dirpx.dev/standin/registry"
	"dirpx.dev/standin/snapshot"
)

// ErrNilRegistry is returned by the generic helpers when given a nil *Registry.
var ErrNilRegistry = errors.New("standin: nil registry")

// Registry is a test-double registry. Build one per test process with New
// and pass it to setup and teardown code.
//
// A Registry is safe for concurrent use. Test cases are still expected to
// be sequenced by the caller so that a reset or restore does not interleave
// with calls left over from the previous case.
type Registry struct {
	cfg   apis.Config
	log   *slog.Logger
	recs  *registry.Registry
	perf  *perf.Tracker
	snaps *snapshot.Manager

	hookMu sync.Mutex
	hooks  []func()
}

// Ensure Registry accepts auto-reset hooks and timing reports.
var (
	_ apis.HookRegistrar = (*Registry)(nil)
	_ apis.Tracker       = (*Registry)(nil)
)

// New constructs an empty Registry configured by opts.
func New(opts ...config.Option) *Registry {
	return NewWithConfig(config.NewConfig(opts...))
}

// NewFromEnv constructs an empty Registry configured from STANDIN_*
// environment variables, with opts applied on top.
func NewFromEnv(opts ...config.Option) (*Registry, error) {
	cfg, err := config.FromEnv(opts...)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig constructs an empty Registry from a ready configuration.
func NewWithConfig(cfg apis.Config) *Registry {
	p := builder.Build(cfg)
	return &Registry{
		cfg:   cfg,
		log:   p.Logger.With(slog.String("component", "standin")),
		recs:  p.Records,
		perf:  p.Tracker,
		snaps: p.Snapshots,
	}
}

// Config returns the configuration r was built with.
func (r *Registry) Config() apis.Config { return r.cfg }

// Logger returns r's logger.
func (r *Registry) Logger() *slog.Logger { return r.log }

// Tracker returns r's performance tracker.
func (r *Registry) Tracker() *perf.Tracker { return r.perf }

// Options carries the optional parts of a registration.
type Options[T any] struct {
	// Baseline is the value a store stand-in returns to on Reset.
	// Nil means no baseline.
	Baseline any
	// Tags label the stand-in for GetByTag.
	Tags []string
	// Decorators are folded over the value in list order.
	Decorators []apis.Decorator[T]
	// Applied names decorators the caller already folded into the value
	// itself. They are recorded ahead of Decorators.
	Applied []string
}

// Register folds the decorators over value, stores the result under id and
// returns it. Registering an existing id replaces its record silently. The
// id and kind are checked before any decorator is applied, so a rejected
// registration leaves no AutoReset hook behind.
//
// Options are usually given once; when several are passed their tags and
// decorators are concatenated and the last non-nil baseline wins.
func Register[T any](r *Registry, id string, kind apis.Kind, value T, opts ...Options[T]) (T, error) {
	if r == nil {
		var zero T
		return zero, ErrNilRegistry
	}
	var o Options[T]
	for _, opt := range opts {
		if opt.Baseline != nil {
			o.Baseline = opt.Baseline
		}
		o.Tags = append(o.Tags, opt.Tags...)
		o.Decorators = append(o.Decorators, opt.Decorators...)
		o.Applied = append(o.Applied, opt.Applied...)
	}
	if err := registry.Validate(id, kind); err != nil {
		var zero T
		return zero, err
	}

	decorated, names := apis.Fold(value, o.Decorators...)
	rec, err := r.recs.Put(registry.Record{
		ID:          id,
		Kind:        kind,
		Value:       decorated,
		Raw:         value,
		Baseline:    o.Baseline,
		HasBaseline: o.Baseline != nil,
		Tags:        o.Tags,
		Decorators:  names,
	})
	if err != nil {
		var zero T
		return zero, err
	}
	r.log.Debug("stand-in registered",
		slog.String("id", rec.ID),
		slog.String("kind", string(rec.Kind)),
		slog.Any("layers", decorator.Layers(rec.Value)),
		slog.Any("tags", rec.Tags),
		slog.Any("decorators", rec.Decorators),
	)
	return decorated, nil
}

// Lookup returns the stand-in stored under id as a T. It reports false when
// id is unknown or its value is not a T.
func Lookup[T any](r *Registry, id string) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	v, ok := r.Get(id)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Decorators returns a decorator.Set bound to r: Timing reports to r's
// tracker, AutoReset hooks run on r.Reset, and Logging, CircuitBreaker,
// Retry and Cache follow r's configuration.
func Decorators[A, R any](r *Registry) decorator.Set[A, R] {
	return decorator.For[A, R](
		decorator.WithTracker(r),
		decorator.WithHooks(r),
		decorator.WithLogger(r.log),
		decorator.WithClock(r.cfg.Clock),
		decorator.WithRetryPause(r.cfg.RetryPause),
		decorator.WithCacheSize(r.cfg.CacheSize),
	)
}

// Get returns the decorated stand-in stored under id.
func (r *Registry) Get(id string) (any, bool) {
	rec, ok := r.recs.Get(id)
	if !ok {
		return nil, false
	}
	return rec.Value, true
}

// Record returns the full record stored under id.
func (r *Registry) Record(id string) (registry.Record, bool) {
	return r.recs.Get(id)
}

// Records returns every record in insertion order.
func (r *Registry) Records() []registry.Record {
	return r.recs.Records()
}

// GetByKind returns the stand-ins of kind k in insertion order.
func (r *Registry) GetByKind(k apis.Kind) []any {
	return r.recs.ByKind(k)
}

// GetByTag returns the stand-ins carrying tag in insertion order.
func (r *Registry) GetByTag(tag string) []any {
	return r.recs.ByTag(tag)
}

// Len returns the number of registered stand-ins.
func (r *Registry) Len() int { return r.recs.Len() }

// Reset runs the auto-reset hooks, then resets every stand-in: call
// history and configured behavior are cleared and store stand-ins with a
// baseline are put back to it. Stand-ins that only keep call history have
// it cleared. Restore failures are reported but do not stop the reset.
func (r *Registry) Reset() error {
	r.runHooks()
	err := r.recs.Reset()
	if err != nil {
		r.log.Warn("registry reset incomplete", slog.Any("error", err))
		return err
	}
	r.log.Debug("registry reset", slog.Int("stand_ins", r.recs.Len()))
	return nil
}

// ClearCalls clears recorded calls of every stand-in, keeping configured
// behavior.
func (r *Registry) ClearCalls() {
	r.recs.ClearCalls()
}

// Unregister removes id and reports whether it was registered.
func (r *Registry) Unregister(id string) bool {
	ok := r.recs.Delete(id)
	if ok {
		r.log.Debug("stand-in unregistered", slog.String("id", id))
	}
	return ok
}

// Clear resets the registry, then drops every stand-in, every snapshot and
// every auto-reset hook. Performance data is kept; see ClearPerformance.
func (r *Registry) Clear() error {
	err := r.Reset()
	r.recs.Purge()
	r.snaps.Clear()
	r.hookMu.Lock()
	r.hooks = nil
	r.hookMu.Unlock()
	r.log.Debug("registry cleared")
	return err
}

// AddResetHook registers fn to run at the start of every Reset.
func (r *Registry) AddResetHook(fn func()) {
	if fn == nil {
		return
	}
	r.hookMu.Lock()
	r.hooks = append(r.hooks, fn)
	r.hookMu.Unlock()
}

// HookCount returns the number of registered auto-reset hooks.
func (r *Registry) HookCount() int {
	r.hookMu.Lock()
	defer r.hookMu.Unlock()
	return len(r.hooks)
}

func (r *Registry) runHooks() {
	r.hookMu.Lock()
	hooks := slices.Clone(r.hooks)
	r.hookMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// CreateSnapshot captures the current stand-ins under id, overwriting any
// snapshot of that name. Stand-ins are captured by reference.
func (r *Registry) CreateSnapshot(id string) error {
	if err := r.snaps.Create(id); err != nil {
		return err
	}
	r.log.Debug("snapshot created", slog.String("snapshot", id), slog.Int("stand_ins", r.recs.Len()))
	return nil
}

// RestoreSnapshot replaces every stand-in with those captured under id. It
// reports false, changing nothing, when id is unknown.
func (r *Registry) RestoreSnapshot(id string) bool {
	ok := r.snaps.Restore(id)
	r.log.Debug("snapshot restored", slog.String("snapshot", id), slog.Bool("found", ok))
	return ok
}

// DeleteSnapshot drops the snapshot id and reports whether it existed.
func (r *Registry) DeleteSnapshot(id string) bool {
	return r.snaps.Delete(id)
}

// ListSnapshots returns snapshot names in insertion order.
func (r *Registry) ListSnapshots() []string {
	return r.snaps.List()
}

// Snapshot returns the snapshot id.
func (r *Registry) Snapshot(id string) (snapshot.Snapshot, bool) {
	return r.snaps.Get(id)
}

// CreateGlobalSnapshot is CreateSnapshot that also captures all performance
// metrics.
func (r *Registry) CreateGlobalSnapshot(id string) error {
	if err := r.snaps.CreateGlobal(id); err != nil {
		return err
	}
	r.log.Debug("global snapshot created", slog.String("snapshot", id))
	return nil
}

// RestoreGlobalSnapshot restores the stand-ins and the performance metrics
// captured by the global snapshot id in one step. It reports false,
// changing nothing, when id is unknown or is not a global snapshot.
func (r *Registry) RestoreGlobalSnapshot(id string) bool {
	ok := r.snaps.RestoreGlobal(id)
	r.log.Debug("global snapshot restored", slog.String("snapshot", id), slog.Bool("found", ok))
	return ok
}

// TrackPerformance records one call of id. Timing decorators bound through
// Decorators call it for every completed call.
func (r *Registry) TrackPerformance(id string, d time.Duration, didError bool) {
	r.perf.TrackPerformance(id, d, didError)
}

// PerformanceMetrics returns the metrics of id.
func (r *Registry) PerformanceMetrics(id string) (perf.CallMetrics, bool) {
	return r.perf.Metrics(id)
}

// AllPerformanceMetrics returns the metrics of every tracked id.
func (r *Registry) AllPerformanceMetrics() map[string]perf.CallMetrics {
	return r.perf.All()
}

// ClearPerformance drops all performance metrics.
func (r *Registry) ClearPerformance() {
	r.perf.Reset()
}

// Stats is an aggregate view of a Registry.
type Stats struct {
	// TotalStandIns is the number of registered stand-ins.
	TotalStandIns int
	// ByKind counts stand-ins per kind; every known kind is present.
	ByKind map[apis.Kind]int
	// TotalSnapshots is the number of stored snapshots.
	TotalSnapshots int
	// Performance rolls up all tracked metrics.
	Performance perf.Rollup
}

// Stats returns an aggregate view of r.
func (r *Registry) Stats() Stats {
	byKind := make(map[apis.Kind]int, len(apis.Kinds()))
	for _, k := range apis.Kinds() {
		byKind[k] = 0
	}
	for k, n := range r.recs.CountByKind() {
		byKind[k] = n
	}
	return Stats{
		TotalStandIns:  r.recs.Len(),
		ByKind:         byKind,
		TotalSnapshots: r.snaps.Len(),
		Performance:    r.perf.Rollup(),
	}
}

// String summarizes r for diagnostics.
func (r *Registry) String() string {
	return fmt.Sprintf("standin.Registry{stand_ins: %d, snapshots: %d}", r.recs.Len(), r.snaps.Len())
}
