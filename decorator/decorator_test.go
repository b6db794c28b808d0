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

package decorator_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"dirpx.dev/standin/apis"
	"dirpx.dev/standin/decorator"
	"dirpx.dev/standin/fake"
	"dirpx.dev/standin/perf"
)

var errBoom = errors.New("boom")

type callable = apis.Callable[string, int]

// observer records the order in which layers see a failure on the way out.
func observer(name string, seen *[]string) apis.Decorator[callable] {
	return apis.Decorator[callable]{
		Name: name,
		Wrap: func(next callable) callable {
			return apis.Func[string, int](func(ctx context.Context, args string) (int, error) {
				r, err := next.Call(ctx, args)
				if err != nil {
					*seen = append(*seen, name)
				}
				return r, err
			})
		},
	}
}

// manualClock is a settable clock for breaker and timing tests.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// hookList is a minimal apis.HookRegistrar.
type hookList struct{ hooks []func() }

func (h *hookList) AddResetHook(fn func()) { h.hooks = append(h.hooks, fn) }

func (h *hookList) run() {
	for _, fn := range h.hooks {
		fn()
	}
}

func TestFold_LaterDecoratorWrapsEarlier(t *testing.T) {
	var seen []string
	raw := fake.NewFunc[string, int](nil).Fails(errBoom)

	v, names := apis.Fold[callable](raw, observer("A", &seen), observer("B", &seen))

	if _, err := v.Call(context.Background(), "x"); !errors.Is(err, errBoom) {
		t.Fatalf("Call err = %v, want errBoom", err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, seen); diff != "" {
		t.Fatalf("failure order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestCallLimit_RejectsWithoutDelegating(t *testing.T) {
	ctx := context.Background()
	raw := fake.NewFunc[string, int](nil).Returns(1)
	v := decorator.CallLimit[string, int](2).Apply(raw)

	for i := 0; i < 2; i++ {
		if _, err := v.Call(ctx, "x"); err != nil {
			t.Fatalf("call %d err = %v, want nil", i+1, err)
		}
	}
	if _, err := v.Call(ctx, "x"); !errors.Is(err, decorator.ErrCallLimitExceeded) {
		t.Fatalf("third call err = %v, want ErrCallLimitExceeded", err)
	}
	if raw.CallCount() != 2 {
		t.Fatalf("raw CallCount = %d, want 2", raw.CallCount())
	}
}

func TestCallLimit_ClearCallsKeepsBudgetResetRestoresIt(t *testing.T) {
	ctx := context.Background()
	raw := fake.NewFunc[string, int](nil)
	v := decorator.CallLimit[string, int](1).Apply(raw)
	lim, ok := decorator.As[*decorator.Limited[string, int]](v)
	if !ok {
		t.Fatalf("As[*Limited]: not found")
	}

	_, _ = v.Call(ctx, "x")
	lim.ClearCalls()
	if raw.CallCount() != 0 {
		t.Fatalf("raw CallCount after ClearCalls = %d, want 0", raw.CallCount())
	}
	if _, err := v.Call(ctx, "x"); !errors.Is(err, decorator.ErrCallLimitExceeded) {
		t.Fatalf("call after ClearCalls err = %v, want ErrCallLimitExceeded", err)
	}

	lim.Reset()
	if lim.Count() != 0 {
		t.Fatalf("Count after Reset = %d, want 0", lim.Count())
	}
	if _, err := v.Call(ctx, "x"); err != nil {
		t.Fatalf("call after Reset err = %v, want nil", err)
	}
}

func TestCircuitBreaker_StateMachine(t *testing.T) {
	ctx := context.Background()
	clk := newManualClock()
	raw := fake.NewFunc[string, int](nil).Fails(errBoom)
	v := decorator.CircuitBreaker[string, int](3, time.Second, clk.Now).Apply(raw)
	b, _ := decorator.As[*decorator.Breaker[string, int]](v)

	for i := 0; i < 3; i++ {
		if _, err := v.Call(ctx, "x"); !errors.Is(err, errBoom) {
			t.Fatalf("failing call %d err = %v, want errBoom", i+1, err)
		}
	}
	if b.State() != decorator.Open {
		t.Fatalf("State after 3 failures = %v, want open", b.State())
	}

	clk.Advance(999 * time.Millisecond)
	if _, err := v.Call(ctx, "x"); !errors.Is(err, decorator.ErrCircuitOpen) {
		t.Fatalf("call within timeout err = %v, want ErrCircuitOpen", err)
	}
	if raw.CallCount() != 3 {
		t.Fatalf("raw CallCount = %d, want 3 (no delegation while open)", raw.CallCount())
	}

	// failed trial reopens
	clk.Advance(time.Millisecond)
	if _, err := v.Call(ctx, "x"); !errors.Is(err, errBoom) {
		t.Fatalf("trial err = %v, want errBoom", err)
	}
	if raw.CallCount() != 4 {
		t.Fatalf("raw CallCount = %d, want 4 (trial delegates)", raw.CallCount())
	}
	if b.State() != decorator.Open {
		t.Fatalf("State after failed trial = %v, want open", b.State())
	}

	// successful trial closes
	raw.Returns(7)
	clk.Advance(time.Second)
	if got, err := v.Call(ctx, "x"); err != nil || got != 7 {
		t.Fatalf("trial = (%d,%v), want (7,nil)", got, err)
	}
	if b.State() != decorator.Closed || b.Failures() != 0 {
		t.Fatalf("after successful trial: state=%v failures=%d, want closed/0", b.State(), b.Failures())
	}
}

func TestCircuitBreaker_SuccessResetsCounter(t *testing.T) {
	ctx := context.Background()
	raw := fake.NewFunc[string, int](nil).FailsOnce(errBoom).FailsOnce(errBoom)
	v := decorator.CircuitBreaker[string, int](3, time.Second, nil).Apply(raw)
	b, _ := decorator.As[*decorator.Breaker[string, int]](v)

	_, _ = v.Call(ctx, "x")
	_, _ = v.Call(ctx, "x")
	if b.Failures() != 2 {
		t.Fatalf("Failures = %d, want 2", b.Failures())
	}
	_, _ = v.Call(ctx, "x")
	if b.Failures() != 0 || b.State() != decorator.Closed {
		t.Fatalf("after success: failures=%d state=%v, want 0/closed", b.Failures(), b.State())
	}
}

func TestCircuitBreaker_ResetCloses(t *testing.T) {
	raw := fake.NewFunc[string, int](nil).Fails(errBoom)
	v := decorator.CircuitBreaker[string, int](1, time.Hour, nil).Apply(raw)
	b, _ := decorator.As[*decorator.Breaker[string, int]](v)

	_, _ = v.Call(context.Background(), "x")
	if b.State() != decorator.Open {
		t.Fatalf("State = %v, want open", b.State())
	}
	b.Reset()
	if b.State() != decorator.Closed {
		t.Fatalf("State after Reset = %v, want closed", b.State())
	}
}

func TestState_String(t *testing.T) {
	cases := map[decorator.State]string{
		decorator.Closed:   "closed",
		decorator.Open:     "open",
		decorator.HalfOpen: "half-open",
		decorator.State(9): "State(9)",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}

func TestCache_FIFOEviction(t *testing.T) {
	ctx := context.Background()
	raw := fake.NewFunc(func(_ context.Context, s string) (int, error) { return len(s), nil })
	v := decorator.Cache[string, int](2).Apply(raw)

	for _, arg := range []string{"a", "bb", "ccc"} {
		_, _ = v.Call(ctx, arg)
	}
	if raw.CallCount() != 3 {
		t.Fatalf("raw CallCount = %d, want 3", raw.CallCount())
	}

	// "bb" is still cached
	if got, _ := v.Call(ctx, "bb"); got != 2 || raw.CallCount() != 3 {
		t.Fatalf("cached call = %d (raw calls %d), want 2 (3)", got, raw.CallCount())
	}
	// "a" was evicted
	if got, _ := v.Call(ctx, "a"); got != 1 || raw.CallCount() != 4 {
		t.Fatalf("evicted call = %d (raw calls %d), want 1 (4)", got, raw.CallCount())
	}

	c, _ := decorator.As[*decorator.Cached[string, int]](v)
	want := decorator.CacheStats{Hits: 1, Misses: 4, Evictions: 2}
	if diff := cmp.Diff(want, c.Stats()); diff != "" {
		t.Fatalf("Stats mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_HitDoesNotRefreshEntry(t *testing.T) {
	ctx := context.Background()
	raw := fake.NewFunc(func(_ context.Context, s string) (int, error) { return len(s), nil })
	v := decorator.Cache[string, int](2).Apply(raw)

	_, _ = v.Call(ctx, "a")
	_, _ = v.Call(ctx, "bb")
	_, _ = v.Call(ctx, "a") // hit
	_, _ = v.Call(ctx, "ccc")

	before := raw.CallCount()
	_, _ = v.Call(ctx, "a")
	if raw.CallCount() != before+1 {
		t.Fatalf("FIFO cache kept a refreshed entry: raw calls %d, want %d", raw.CallCount(), before+1)
	}
}

func TestCache_StructuralKeys(t *testing.T) {
	type query struct {
		Name string
		Tags []string
	}
	ctx := context.Background()
	raw := fake.NewFunc(func(_ context.Context, q query) (int, error) { return len(q.Tags), nil })
	v := decorator.Cache[query, int](4).Apply(raw)

	_, _ = v.Call(ctx, query{Name: "x", Tags: []string{"a", "b"}})
	_, _ = v.Call(ctx, query{Name: "x", Tags: []string{"a", "b"}})
	if raw.CallCount() != 1 {
		t.Fatalf("raw CallCount = %d, want 1 for structurally equal args", raw.CallCount())
	}
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	raw := fake.NewFunc[string, int](nil).FailsOnce(errBoom).Returns(5)
	v := decorator.Cache[string, int](2).Apply(raw)

	if _, err := v.Call(ctx, "k"); !errors.Is(err, errBoom) {
		t.Fatalf("first call err = %v, want errBoom", err)
	}
	if got, err := v.Call(ctx, "k"); err != nil || got != 5 {
		t.Fatalf("second call = (%d,%v), want (5,nil)", got, err)
	}
	if raw.CallCount() != 2 {
		t.Fatalf("raw CallCount = %d, want 2", raw.CallCount())
	}
}

func TestCache_UnhashableArgsBypass(t *testing.T) {
	ctx := context.Background()
	raw := fake.NewFunc[func(), int](nil).Returns(1)
	v := decorator.Cache[func(), int](2).Apply(raw)

	fn := func() {}
	_, _ = v.Call(ctx, fn)
	_, _ = v.Call(ctx, fn)
	if raw.CallCount() != 2 {
		t.Fatalf("raw CallCount = %d, want 2 (bypass)", raw.CallCount())
	}
	c, _ := decorator.As[*decorator.Cached[func(), int]](v)
	if c.Stats().Bypassed != 2 || c.Len() != 0 {
		t.Fatalf("Bypassed=%d Len=%d, want 2/0", c.Stats().Bypassed, c.Len())
	}
}

func TestCache_ResetEmpties(t *testing.T) {
	ctx := context.Background()
	raw := fake.NewFunc[string, int](nil)
	v := decorator.Cache[string, int](2).Apply(raw)
	c, _ := decorator.As[*decorator.Cached[string, int]](v)

	_, _ = v.Call(ctx, "a")
	c.ClearCalls()
	if c.Len() != 1 {
		t.Fatalf("Len after ClearCalls = %d, want 1", c.Len())
	}
	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", c.Len())
	}
}

func TestRetry_SucceedsOnLaterAttempt(t *testing.T) {
	raw := fake.NewFunc[string, int](nil).FailsOnce(errBoom).FailsOnce(errBoom).Returns(3)
	v := decorator.Retry[string, int](2, 0).Apply(raw)

	got, err := v.Call(context.Background(), "x")
	if err != nil || got != 3 {
		t.Fatalf("Call = (%d,%v), want (3,nil)", got, err)
	}
	if raw.CallCount() != 3 {
		t.Fatalf("raw CallCount = %d, want 3", raw.CallCount())
	}
}

func TestRetry_PropagatesLastError(t *testing.T) {
	errFirst := errors.New("first")
	errLast := errors.New("last")
	raw := fake.NewFunc[string, int](nil).FailsOnce(errFirst).Fails(errLast)
	v := decorator.Retry[string, int](2, 0).Apply(raw)

	_, err := v.Call(context.Background(), "x")
	if err != errLast {
		t.Fatalf("Call err = %v, want the last underlying error", err)
	}
	r, _ := decorator.As[*decorator.Retried[string, int]](v)
	if r.Attempts() != 3 {
		t.Fatalf("Attempts = %d, want 3", r.Attempts())
	}
}

func TestRetry_ZeroRetriesCallsOnce(t *testing.T) {
	raw := fake.NewFunc[string, int](nil).Fails(errBoom)
	v := decorator.Retry[string, int](0, 0).Apply(raw)

	if _, err := v.Call(context.Background(), "x"); !errors.Is(err, errBoom) {
		t.Fatalf("Call err = %v, want errBoom", err)
	}
	if raw.CallCount() != 1 {
		t.Fatalf("raw CallCount = %d, want 1", raw.CallCount())
	}
}

func TestDelay_WaitsThenDelegates(t *testing.T) {
	raw := fake.NewFunc[string, int](nil).Returns(1)
	tr := perf.New(nil)
	v, _ := apis.Fold[callable](raw,
		decorator.Delay[string, int](20*time.Millisecond),
		decorator.Timing[string, int](tr, "slow", nil),
	)

	if got, err := v.Call(context.Background(), "x"); err != nil || got != 1 {
		t.Fatalf("Call = (%d,%v), want (1,nil)", got, err)
	}
	m, ok := tr.Metrics("slow")
	if !ok || m.Count != 1 {
		t.Fatalf("Metrics(slow) = (%+v,%v), want one call", m, ok)
	}
	if m.TotalTime < 20*time.Millisecond {
		t.Fatalf("TotalTime = %v, want >= 20ms including the delay", m.TotalTime)
	}
}

func TestDelay_CancelledContext(t *testing.T) {
	raw := fake.NewFunc[string, int](nil)
	tr := perf.New(nil)
	v, _ := apis.Fold[callable](raw,
		decorator.Delay[string, int](time.Hour),
		decorator.Timing[string, int](tr, "abandoned", nil),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := v.Call(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Call err = %v, want context.Canceled", err)
	}
	if raw.CallCount() != 0 {
		t.Fatalf("raw CallCount = %d, want 0", raw.CallCount())
	}
	if _, ok := tr.Metrics("abandoned"); ok {
		t.Fatalf("abandoned call was reported to the tracker")
	}
}

func TestTiming_ReportsErrorsAndPassesThemThrough(t *testing.T) {
	clk := newManualClock()
	raw := fake.NewFunc(func(_ context.Context, _ string) (int, error) {
		clk.Advance(5 * time.Millisecond)
		return 0, errBoom
	})
	tr := perf.New(nil)
	v := decorator.Timing[string, int](tr, "svc", clk.Now).Apply(raw)

	if _, err := v.Call(context.Background(), "x"); err != errBoom {
		t.Fatalf("Call err = %v, want errBoom unchanged", err)
	}
	m, _ := tr.Metrics("svc")
	if m.Count != 1 || m.ErrorCount != 1 || m.TotalTime != 5*time.Millisecond {
		t.Fatalf("Metrics = %+v, want count=1 errors=1 total=5ms", m)
	}
	timed, _ := decorator.As[*decorator.Timed[string, int]](v)
	if diff := cmp.Diff([]time.Duration{5 * time.Millisecond}, timed.Durations()); diff != "" {
		t.Fatalf("Durations mismatch (-want +got):\n%s", diff)
	}
}

func TestTiming_WithoutIDKeepsLocalDurationsOnly(t *testing.T) {
	tr := perf.New(nil)
	v := decorator.Timing[string, int](tr, "", nil).Apply(fake.NewFunc[string, int](nil))

	_, _ = v.Call(context.Background(), "x")
	if len(tr.All()) != 0 {
		t.Fatalf("tracker got %d ids, want 0", len(tr.All()))
	}
	timed, _ := decorator.As[*decorator.Timed[string, int]](v)
	if len(timed.Durations()) != 1 {
		t.Fatalf("Durations len = %d, want 1", len(timed.Durations()))
	}
}

func TestLogging_RecordsArgs(t *testing.T) {
	raw := fake.NewFunc[string, int](nil)
	v := decorator.Logging[string, int]("svc", nil).Apply(raw)

	_, _ = v.Call(context.Background(), "a")
	_, _ = v.Call(context.Background(), "b")

	l, ok := decorator.As[*decorator.Logged[string, int]](v)
	if !ok {
		t.Fatalf("As[*Logged]: not found")
	}
	if diff := cmp.Diff([]string{"a", "b"}, l.Calls()); diff != "" {
		t.Fatalf("Calls mismatch (-want +got):\n%s", diff)
	}
	if l.Label() != "svc" {
		t.Fatalf("Label = %q, want svc", l.Label())
	}
}

func TestAutoReset_RegistersHookAtDecoration(t *testing.T) {
	hooks := &hookList{}
	raw := fake.NewFunc[string, int](nil)
	d := decorator.AutoReset[string, int](hooks)

	if len(hooks.hooks) != 0 {
		t.Fatalf("hooks registered before decoration")
	}
	v := d.Apply(raw)
	if len(hooks.hooks) != 1 {
		t.Fatalf("hooks = %d, want 1 after decoration", len(hooks.hooks))
	}

	_, _ = v.Call(context.Background(), "x")
	hooks.run()
	if raw.CallCount() != 0 {
		t.Fatalf("raw CallCount after hook = %d, want 0", raw.CallCount())
	}
}

func TestClearCalls_ForwardsThroughChain(t *testing.T) {
	raw := fake.NewFunc[string, int](nil).Returns(9)
	v, _ := apis.Fold[callable](raw,
		decorator.Logging[string, int]("svc", nil),
		decorator.Timing[string, int](nil, "", nil),
		decorator.CallLimit[string, int](5),
	)
	_, _ = v.Call(context.Background(), "x")

	v.(apis.CallClearer).ClearCalls()

	l, _ := decorator.As[*decorator.Logged[string, int]](v)
	tm, _ := decorator.As[*decorator.Timed[string, int]](v)
	if raw.CallCount() != 0 || len(l.Calls()) != 0 || len(tm.Durations()) != 0 {
		t.Fatalf("history left after ClearCalls: raw=%d logged=%d timed=%d",
			raw.CallCount(), len(l.Calls()), len(tm.Durations()))
	}
	if got, _ := v.Call(context.Background(), "x"); got != 9 {
		t.Fatalf("behavior lost after ClearCalls: got %d, want 9", got)
	}
}

func TestAs_NotFound(t *testing.T) {
	v := decorator.Logging[string, int]("x", nil).Apply(fake.NewFunc[string, int](nil))
	if _, ok := decorator.As[*decorator.Breaker[string, int]](v); ok {
		t.Fatalf("As found a breaker that is not in the chain")
	}
	if raw, ok := decorator.As[*fake.Func[string, int]](v); !ok || raw == nil {
		t.Fatalf("As did not reach the raw stand-in")
	}
}

func TestTiming_MeasuresRetryPause(t *testing.T) {
	const pause = 20 * time.Millisecond
	raw := fake.NewFunc[string, int](nil).FailsOnce(errBoom).FailsOnce(errBoom).Returns(3)
	v, _ := apis.Fold[callable](raw,
		decorator.Retry[string, int](2, pause),
		decorator.Timing[string, int](nil, "", nil),
	)

	if got, err := v.Call(context.Background(), "x"); err != nil || got != 3 {
		t.Fatalf("Call = (%d,%v), want (3,nil)", got, err)
	}
	if raw.CallCount() != 3 {
		t.Fatalf("raw CallCount = %d, want 3", raw.CallCount())
	}
	timed, _ := decorator.As[*decorator.Timed[string, int]](v)
	ds := timed.Durations()
	if len(ds) != 1 || ds[0] < 2*pause {
		t.Fatalf("Durations = %v, want one duration >= %v", ds, 2*pause)
	}
}

func TestLayers_OutermostFirst(t *testing.T) {
	v, _ := apis.Fold[callable](fake.NewFunc[string, int](nil),
		decorator.Retry[string, int](1, 0),
		decorator.Timing[string, int](nil, "", nil),
	)
	want := []string{"decorator.Timed", "decorator.Retried", "fake.Func"}
	if diff := cmp.Diff(want, decorator.Layers(v)); diff != "" {
		t.Fatalf("Layers mismatch (-want +got):\n%s", diff)
	}
}

func TestUnwrap(t *testing.T) {
	raw := fake.NewFunc[string, int](nil)
	v := decorator.Delay[string, int](0).Apply(raw)
	u, ok := v.(apis.Unwrapper[string, int])
	if !ok {
		t.Fatalf("layer does not implement apis.Unwrapper")
	}
	if u.Unwrap() != callable(raw) {
		t.Fatalf("Unwrap did not return the raw stand-in")
	}
}

func TestTracing_RecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	raw := fake.NewFunc[string, int](nil).ReturnsOnce(1).Fails(errBoom)
	v := decorator.Tracing[string, int](tp.Tracer("test"), "svc.get").Apply(raw)

	_, _ = v.Call(context.Background(), "ok")
	if _, err := v.Call(context.Background(), "bad"); err != errBoom {
		t.Fatalf("Call err = %v, want errBoom unchanged", err)
	}

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	if spans[0].Name() != "svc.get" || spans[0].Status().Code != codes.Ok {
		t.Fatalf("span[0] = %s/%v, want svc.get/Ok", spans[0].Name(), spans[0].Status().Code)
	}
	if spans[1].Status().Code != codes.Error || len(spans[1].Events()) == 0 {
		t.Fatalf("span[1] status=%v events=%d, want Error with a recorded error", spans[1].Status().Code, len(spans[1].Events()))
	}
}

func TestSet_BindsDependencies(t *testing.T) {
	tr := perf.New(nil)
	hooks := &hookList{}
	d := decorator.For[string, int](
		decorator.WithTracker(tr),
		decorator.WithHooks(hooks),
		decorator.WithCacheSize(1),
	)
	raw := fake.NewFunc(func(_ context.Context, s string) (int, error) { return len(s), nil })
	v, names := apis.Fold[callable](raw, d.Cache(0), d.Timing("svc"), d.AutoReset())

	_, _ = v.Call(context.Background(), "a")
	_, _ = v.Call(context.Background(), "bb")
	_, _ = v.Call(context.Background(), "a")

	if m, _ := tr.Metrics("svc"); m.Count != 3 {
		t.Fatalf("Metrics(svc).Count = %d, want 3", m.Count)
	}
	if raw.CallCount() != 3 {
		t.Fatalf("raw CallCount = %d, want 3 with a one-entry cache", raw.CallCount())
	}
	if len(hooks.hooks) != 1 {
		t.Fatalf("hooks = %d, want 1", len(hooks.hooks))
	}
	if got := strings.Join(names, ","); got != "cache(1),timing(svc),autoReset" {
		t.Fatalf("names = %q", got)
	}
}
