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
	"slices"
	"time"

	"dirpx.dev/standin/apis"
)

// ErrNotRestorable is returned when a store record has a baseline but its
// stand-in cannot be restored.
var ErrNotRestorable = errors.New("standin(registry): stand-in does not implement apis.Restorer")

// Record is everything the registry knows about one stand-in.
type Record struct {
	// ID is unique within the registry at any instant.
	ID string
	// Kind tags the stand-in shape.
	Kind apis.Kind
	// Value is the decorated stand-in handed out by lookups.
	Value any
	// Raw is the stand-in before decoration.
	Raw any
	// Baseline is the value a store stand-in returns to on reset.
	Baseline any
	// HasBaseline distinguishes a nil baseline from no baseline.
	HasBaseline bool
	// CreatedAt is when the record was stored.
	CreatedAt time.Time
	// Tags is a sorted set of labels.
	Tags []string
	// Decorators lists applied decorator names, innermost first.
	Decorators []string
}

// HasTag reports whether tag is among rec's tags.
func (rec *Record) HasTag(tag string) bool {
	_, ok := slices.BinarySearch(rec.Tags, tag)
	return ok
}

// Decorated reports whether at least one decorator was applied.
func (rec *Record) Decorated() bool {
	return len(rec.Decorators) > 0
}

// each calls fn on the decorated value and, when decoration may have hidden
// it, on the raw value too. Clearing is idempotent so a raw value reached
// twice (once through a forwarding wrapper) is harmless.
func (rec *Record) each(fn func(any)) {
	fn(rec.Value)
	if rec.Decorated() {
		fn(rec.Raw)
	}
}

// restore puts the stand-in back to its baseline.
func (rec *Record) restore() error {
	if r, ok := rec.Value.(apis.Restorer); ok {
		return r.Restore(rec.Baseline)
	}
	if r, ok := rec.Raw.(apis.Restorer); ok {
		return r.Restore(rec.Baseline)
	}
	return ErrNotRestorable
}

// Table is an immutable, insertion-ordered id -> Record map.
type Table struct {
	ids  []string
	recs map[string]*Record
}

func emptyTable() *Table {
	return &Table{recs: map[string]*Record{}}
}

// Len returns the number of records in t.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

// IDs returns the ids in t in insertion order.
func (t *Table) IDs() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.ids)
}

// with returns a copy of t with rec stored. An existing id keeps its position.
func (t *Table) with(rec *Record) *Table {
	n := &Table{
		ids:  slices.Clone(t.ids),
		recs: make(map[string]*Record, len(t.recs)+1),
	}
	for id, r := range t.recs {
		n.recs[id] = r
	}
	if _, ok := n.recs[rec.ID]; !ok {
		n.ids = append(n.ids, rec.ID)
	}
	n.recs[rec.ID] = rec
	return n
}

// without returns a copy of t with id removed.
func (t *Table) without(id string) *Table {
	n := &Table{
		ids:  make([]string, 0, len(t.ids)),
		recs: make(map[string]*Record, len(t.recs)),
	}
	for _, k := range t.ids {
		if k == id {
			continue
		}
		n.ids = append(n.ids, k)
		n.recs[k] = t.recs[k]
	}
	return n
}

// values returns the values of records matching keep, in insertion order.
func (t *Table) values(keep func(*Record) bool) []any {
	var out []any
	for _, id := range t.ids {
		if rec := t.recs[id]; keep(rec) {
			out = append(out, rec.Value)
		}
	}
	return out
}
