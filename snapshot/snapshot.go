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

// Package snapshot captures and restores registry state under a name.
//
// A snapshot holds the registry's record table as it was at capture time.
// Tables are immutable, so the capture is a shallow copy: stand-ins are
// shared by reference and changes made to a stand-in's own state after the
// capture are not undone by a restore. A snapshot captures identity, not
// deep value.
package snapshot

import (
	"errors"
	"slices"
	"sync"
	"time"

	"dirpx.dev/standin/apis"
	"dirpx.dev/standin/perf"
	"dirpx.dev/standin/registry"
)

// ErrEmptyID is returned when a snapshot is created without a name.
var ErrEmptyID = errors.New("standin(snapshot): empty id provided")

// Source is the registry side of a snapshot.
type Source interface {
	Capture() *registry.Table
	Install(*registry.Table)
}

// Metrics is the performance side of a global snapshot.
type Metrics interface {
	Export() perf.Data
	Import(perf.Data)
}

// Snapshot is a named point-in-time copy of registry state.
type Snapshot struct {
	// ID is the snapshot name.
	ID string
	// TakenAt is when the snapshot was captured.
	TakenAt time.Time
	// Global is set for snapshots that also hold performance data.
	Global bool

	table   *registry.Table
	metrics perf.Data
}

// Len returns the number of records captured.
func (s Snapshot) Len() int { return s.table.Len() }

// IDs returns the captured stand-in ids in insertion order.
func (s Snapshot) IDs() []string { return s.table.IDs() }

// MetricCount returns the number of performance ids captured by a global
// snapshot.
func (s Snapshot) MetricCount() int { return s.metrics.Len() }

// Manager owns the named snapshots of one registry.
type Manager struct {
	src     Source
	metrics Metrics
	now     apis.Clock

	mu    sync.Mutex
	ids   []string
	snaps map[string]*Snapshot
}

// New constructs a Manager over src. metrics may be nil, in which case
// global snapshots behave like plain ones.
func New(src Source, metrics Metrics, now apis.Clock) *Manager {
	return &Manager{
		src:     src,
		metrics: metrics,
		now:     now,
		snaps:   make(map[string]*Snapshot),
	}
}

// Create captures the registry under id, overwriting any snapshot with the
// same name. An overwritten name keeps its position in List.
func (m *Manager) Create(id string) error {
	return m.create(id, false)
}

// CreateGlobal is Create that also captures the full performance data set.
func (m *Manager) CreateGlobal(id string) error {
	return m.create(id, true)
}

func (m *Manager) create(id string, global bool) error {
	if id == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Snapshot{ID: id, TakenAt: m.now.Now(), Global: global, table: m.src.Capture()}
	if global && m.metrics != nil {
		s.metrics = m.metrics.Export()
	}
	if _, ok := m.snaps[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.snaps[id] = s
	return nil
}

// Restore replaces the live registry table with the one captured under id.
// It reports false, leaving everything untouched, when id is unknown.
// Performance data is never touched, even for a global snapshot.
func (m *Manager) Restore(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snaps[id]
	if !ok {
		return false
	}
	m.src.Install(s.table)
	return true
}

// RestoreGlobal replaces both the registry table and the performance data
// with what the global snapshot id captured. It reports false, leaving
// everything untouched, when id is unknown or names a plain snapshot.
func (m *Manager) RestoreGlobal(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snaps[id]
	if !ok || !s.Global {
		return false
	}
	m.src.Install(s.table)
	if m.metrics != nil {
		m.metrics.Import(s.metrics)
	}
	return true
}

// Delete drops the snapshot id and reports whether it existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snaps[id]; !ok {
		return false
	}
	delete(m.snaps, id)
	m.ids = slices.DeleteFunc(m.ids, func(s string) bool { return s == id })
	return true
}

// Get returns the snapshot id.
func (m *Manager) Get(id string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snaps[id]
	if !ok {
		return Snapshot{}, false
	}
	return *s, true
}

// List returns snapshot names in insertion order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.ids)
}

// Len returns the number of snapshots.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ids)
}

// Clear drops every snapshot.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.ids = nil
	m.snaps = make(map[string]*Snapshot)
	m.mu.Unlock()
}
