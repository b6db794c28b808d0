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
	"fmt"
	"slices"
	"sync"

	"dirpx.dev/standin/apis"
)

// Store is a reactive state container stand-in. Every Set is recorded and
// broadcast to subscribers.
type Store[S any] struct {
	mu      sync.Mutex
	state   S
	history []S
	subs    map[int]func(S)
	next    int
}

// Ensure Store implements the stand-in contracts.
var (
	_ apis.CallClearer = (*Store[int])(nil)
	_ apis.Resetter    = (*Store[int])(nil)
	_ apis.Restorer    = (*Store[int])(nil)
)

// NewStore returns a Store holding initial.
func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{state: initial, subs: make(map[int]func(S))}
}

// Get returns the current state.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set replaces the state, records it and notifies subscribers.
func (s *Store[S]) Set(v S) {
	s.mu.Lock()
	s.state = v
	s.history = append(s.history, v)
	subs := s.subscribers()
	s.mu.Unlock()
	notify(subs, v)
}

// Update sets the state to fn(current).
func (s *Store[S]) Update(fn func(S) S) {
	s.mu.Lock()
	v := fn(s.state)
	s.state = v
	s.history = append(s.history, v)
	subs := s.subscribers()
	s.mu.Unlock()
	notify(subs, v)
}

// Subscribe registers fn for state changes and returns its cancel function.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// History returns every state passed to Set or produced by Update.
func (s *Store[S]) History() []S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// ClearCalls forgets the recorded history.
func (s *Store[S]) ClearCalls() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// Reset forgets the recorded history. Subscribers stay registered so they
// hear the baseline restore that follows a registry reset.
func (s *Store[S]) Reset() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// Restore sets the state to baseline without recording it. baseline must be
// an S.
func (s *Store[S]) Restore(baseline any) error {
	v, ok := baseline.(S)
	if !ok {
		return fmt.Errorf("%w: have %T, want %T", ErrBaselineType, baseline, *new(S))
	}
	s.mu.Lock()
	s.state = v
	subs := s.subscribers()
	s.mu.Unlock()
	notify(subs, v)
	return nil
}

// subscribers returns the current subscriber set in registration order.
// Callers hold s.mu.
func (s *Store[S]) subscribers() []func(S) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(S), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}

func notify[S any](subs []func(S), v S) {
	for _, fn := range subs {
		fn(v)
	}
}
