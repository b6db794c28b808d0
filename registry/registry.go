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

package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"dirpx.dev/standin/apis"
)

var (
	// ErrEmptyID is returned when an empty identifier is provided.
	ErrEmptyID = errors.New("standin(registry): empty id provided")
	// ErrUnknownKind is returned when a kind outside apis.Kinds() is provided.
	ErrUnknownKind = errors.New("standin(registry): unknown kind")
)

// New constructs an empty Registry. A nil clock means time.Now.
func New(now apis.Clock) *Registry {
	r := &Registry{now: now}
	r.st.Store(emptyTable())
	return r
}

// Registry is the id -> Record store.
//
// The live table is immutable once published; readers load it atomically and
// never take locks. Writers copy the table under buildMu and swap the new
// one in, so a Capture is a shallow copy for free and Install is a single
// pointer store.
type Registry struct {
	now apis.Clock
	// buildMu serializes writers so no two copies race to publish.
	buildMu sync.Mutex
	// st is the current table.
	st atomic.Pointer[Table]
}

// Put stores rec under rec.ID, replacing any record with the same id in
// place. CreatedAt is stamped from the registry clock and tags are
// normalized to a sorted set.
func (r *Registry) Put(rec Record) (Record, error) {
	if err := Validate(rec.ID, rec.Kind); err != nil {
		return Record{}, err
	}
	rec.CreatedAt = r.now.Now()
	rec.Tags = normalizeTags(rec.Tags)
	rec.Decorators = slices.Clone(rec.Decorators)

	r.buildMu.Lock()
	defer r.buildMu.Unlock()
	r.st.Store(r.st.Load().with(&rec))
	return rec, nil
}

// Validate reports whether id and kind are acceptable to Put.
func Validate(id string, kind apis.Kind) error {
	if id == "" {
		return ErrEmptyID
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return nil
}

// Get returns the record stored under id.
func (r *Registry) Get(id string) (Record, bool) {
	rec, ok := r.st.Load().recs[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Delete removes id and reports whether it was present.
func (r *Registry) Delete(id string) bool {
	r.buildMu.Lock()
	defer r.buildMu.Unlock()
	old := r.st.Load()
	if _, ok := old.recs[id]; !ok {
		return false
	}
	r.st.Store(old.without(id))
	return true
}

// ByKind returns the values of every record of kind k in insertion order.
func (r *Registry) ByKind(k apis.Kind) []any {
	return r.st.Load().values(func(rec *Record) bool { return rec.Kind == k })
}

// ByTag returns the values of every record carrying tag in insertion order.
func (r *Registry) ByTag(tag string) []any {
	return r.st.Load().values(func(rec *Record) bool { return rec.HasTag(tag) })
}

// Records returns a copy of all records in insertion order.
func (r *Registry) Records() []Record {
	t := r.st.Load()
	out := make([]Record, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, *t.recs[id])
	}
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return r.st.Load().Len()
}

// CountByKind returns the number of records per kind. Kinds with no records
// are omitted.
func (r *Registry) CountByKind() map[apis.Kind]int {
	out := make(map[apis.Kind]int)
	t := r.st.Load()
	for _, id := range t.ids {
		out[t.recs[id].Kind]++
	}
	return out
}

// Capture returns the current table. Tables are immutable, so the result is
// a point-in-time shallow copy: it shares stand-in values by reference.
func (r *Registry) Capture() *Table {
	return r.st.Load()
}

// Install replaces the live table wholesale with t. A nil t empties the
// registry.
func (r *Registry) Install(t *Table) {
	if t == nil {
		t = emptyTable()
	}
	r.buildMu.Lock()
	r.st.Store(t)
	r.buildMu.Unlock()
}

// Purge removes every record.
func (r *Registry) Purge() {
	r.Install(nil)
}

// Reset clears call history and configured behavior of every stand-in that
// supports it, then puts store records with a baseline back to it. Restore
// failures are joined into the returned error; the remaining records are
// still processed.
func (r *Registry) Reset() error {
	var errs []error
	t := r.st.Load()
	for _, id := range t.ids {
		rec := t.recs[id]
		rec.each(resetValue)
		if rec.Kind == apis.KindStore && rec.HasBaseline {
			if err := rec.restore(); err != nil {
				errs = append(errs, fmt.Errorf("standin(registry): restore %q: %w", id, err))
			}
		}
	}
	return errors.Join(errs...)
}

// ClearCalls clears recorded calls of every stand-in that keeps them,
// leaving configured behavior intact.
func (r *Registry) ClearCalls() {
	t := r.st.Load()
	for _, id := range t.ids {
		t.recs[id].each(clearValue)
	}
}

func resetValue(v any) {
	switch x := v.(type) {
	case apis.Resetter:
		x.Reset()
	case apis.CallClearer:
		x.ClearCalls()
	}
}

func clearValue(v any) {
	if c, ok := v.(apis.CallClearer); ok {
		c.ClearCalls()
	}
}

// normalizeTags returns a sorted, de-duplicated copy of tags without empty entries.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
