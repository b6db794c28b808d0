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
	"maps"
	"slices"
	"sync"

	"dirpx.dev/standin/apis"
)

// Module is a namespace stand-in: a set of named members (functions,
// constants, nested stand-ins). Clears and resets reach every member that
// supports them.
type Module struct {
	mu      sync.RWMutex
	members map[string]any
}

// Ensure Module implements the stand-in contracts.
var (
	_ apis.CallClearer = (*Module)(nil)
	_ apis.Resetter    = (*Module)(nil)
)

// NewModule returns a Module exposing a copy of members.
func NewModule(members map[string]any) *Module {
	m := make(map[string]any, len(members))
	maps.Copy(m, members)
	return &Module{members: m}
}

// Member returns the member called name.
func (m *Module) Member(name string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.members[name]
	return v, ok
}

// Set adds or replaces a member.
func (m *Module) Set(name string, v any) {
	m.mu.Lock()
	m.members[name] = v
	m.mu.Unlock()
}

// Names returns the member names in sorted order.
func (m *Module) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.members))
}

// ClearCalls clears the call history of every member that keeps one.
func (m *Module) ClearCalls() {
	for _, v := range m.snapshot() {
		if c, ok := v.(apis.CallClearer); ok {
			c.ClearCalls()
		}
	}
}

// Reset resets every member that supports it.
func (m *Module) Reset() {
	for _, v := range m.snapshot() {
		switch x := v.(type) {
		case apis.Resetter:
			x.Reset()
		case apis.CallClearer:
			x.ClearCalls()
		}
	}
}

func (m *Module) snapshot() []any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Collect(maps.Values(m.members))
}

// MemberAs returns the member called name as a T.
func MemberAs[T any](m *Module, name string) (T, bool) {
	v, ok := m.Member(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
