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
	"sync"
	"time"

	"dirpx.dev/standin/apis"
)

// State is a circuit breaker state.
type State int

const (
	// Closed delegates every call.
	Closed State = iota
	// Open rejects calls until the reset timeout has elapsed.
	Open
	// HalfOpen lets the next call through as a trial.
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// CircuitBreaker stops delegating after failureThreshold consecutive
// failures.
//
//   - Closed: calls delegate. A success zeroes the failure count; a failure
//     increments it and stamps lastFailureAt, opening the circuit once the
//     count reaches failureThreshold.
//   - Open: calls fail with ErrCircuitOpen without delegating until
//     resetTimeout has elapsed since lastFailureAt; the first call after that
//     moves to HalfOpen and goes through as a trial.
//   - HalfOpen: a successful trial closes the circuit and zeroes the count;
//     a failed trial reopens it and stamps lastFailureAt.
//
// Transitions happen inside the call that causes them. A failureThreshold
// below 1 is treated as 1; now defaults to time.Now.
func CircuitBreaker[A, R any](failureThreshold int, resetTimeout time.Duration, now apis.Clock) apis.Decorator[apis.Callable[A, R]] {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	return apis.Decorator[apis.Callable[A, R]]{
		Name: fmt.Sprintf("circuitBreaker(%d,%s)", failureThreshold, resetTimeout),
		Wrap: func(next apis.Callable[A, R]) apis.Callable[A, R] {
			return &Breaker[A, R]{
				layer:     layer[A, R]{next: next},
				threshold: failureThreshold,
				timeout:   resetTimeout,
				now:       now,
			}
		},
	}
}

// Breaker is the layer produced by CircuitBreaker.
type Breaker[A, R any] struct {
	layer[A, R]
	threshold int
	timeout   time.Duration
	now       apis.Clock

	mu            sync.Mutex
	state         State
	failures      int
	lastFailureAt time.Time
}

// Call applies the state machine around the delegated call.
func (b *Breaker[A, R]) Call(ctx context.Context, args A) (R, error) {
	b.mu.Lock()
	if b.state == Open {
		if b.now.Now().Sub(b.lastFailureAt) < b.timeout {
			b.mu.Unlock()
			var zero R
			return zero, ErrCircuitOpen
		}
		b.state = HalfOpen
	}
	b.mu.Unlock()

	res, err := b.next.Call(ctx, args)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.failures++
		b.lastFailureAt = b.now.Now()
		if b.state == HalfOpen || b.failures >= b.threshold {
			b.state = Open
		}
		return res, err
	}
	b.failures = 0
	b.state = Closed
	return res, nil
}

// State returns the current state.
func (b *Breaker[A, R]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures returns the current consecutive failure count.
func (b *Breaker[A, R]) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// ClearCalls forwards down the chain; breaker state is behavior and survives.
func (b *Breaker[A, R]) ClearCalls() { clearNext(b.next) }

// Reset closes the circuit, zeroes the failure count and resets the chain.
func (b *Breaker[A, R]) Reset() {
	b.mu.Lock()
	b.state = Closed
	b.failures = 0
	b.lastFailureAt = time.Time{}
	b.mu.Unlock()
	resetNext(b.next)
}
