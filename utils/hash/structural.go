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

// Package hash computes structural hashes of Go values.
//
// Two values that are reflect.DeepEqual hash to the same key. The walk
// follows DeepEqual's rules: pointers, slices and maps are compared by what
// they reference, map entries are combined order-independently, struct
// fields (exported or not) are all visited, and the dynamic type of every
// value is part of the key so int(1) and int64(1) differ.
//
// Functions, channels and unsafe pointers have no structural identity and
// yield ErrUnhashable. Reference cycles yield ErrCycle rather than looping.
// Callers that need exact equality should confirm a hash hit with
// reflect.DeepEqual, since distinct values may collide.
package hash

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"slices"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrUnhashable is returned for values containing funcs, chans or unsafe pointers.
	ErrUnhashable = errors.New("standin(hash): value has no structural identity")
	// ErrCycle is returned for values that reference themselves.
	ErrCycle = errors.New("standin(hash): cyclic value")
	// ErrTooDeep is returned when nesting exceeds DefaultMaxDepth.
	ErrTooDeep = errors.New("standin(hash): value nested too deeply")
)

// DefaultMaxDepth bounds recursion. It should be sufficient for any argument
// tuple a test double receives.
const DefaultMaxDepth = 64

// Of returns the structural hash of the tuple vs.
func Of(vs ...any) (uint64, error) {
	w := newWalker()
	w.uint(uint64(len(vs)))
	for _, v := range vs {
		if err := w.value(reflect.ValueOf(v), 0); err != nil {
			return 0, err
		}
	}
	return w.d.Sum64(), nil
}

// visit identifies a reference-carrying value currently on the walk path.
type visit struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// walker feeds a canonical encoding of a value into an xxhash digest.
type walker struct {
	d    *xxhash.Digest
	path map[visit]struct{}
	buf  [8]byte
}

func newWalker() *walker {
	return &walker{d: xxhash.New(), path: make(map[visit]struct{})}
}

// child returns a walker with a fresh digest that shares the cycle path.
func (w *walker) child() *walker {
	return &walker{d: xxhash.New(), path: w.path}
}

func (w *walker) uint(u uint64) {
	binary.LittleEndian.PutUint64(w.buf[:], u)
	_, _ = w.d.Write(w.buf[:])
}

func (w *walker) str(s string) {
	w.uint(uint64(len(s)))
	_, _ = w.d.WriteString(s)
}

func (w *walker) tag(b byte) {
	w.buf[0] = b
	_, _ = w.d.Write(w.buf[:1])
}

// enter records a reference on the current path; it fails on a revisit.
func (w *walker) enter(k visit) (func(), error) {
	if _, ok := w.path[k]; ok {
		return nil, ErrCycle
	}
	w.path[k] = struct{}{}
	return func() { delete(w.path, k) }, nil
}

func (w *walker) value(v reflect.Value, depth int) error {
	if depth > DefaultMaxDepth {
		return ErrTooDeep
	}
	if !v.IsValid() {
		w.tag(0)
		return nil
	}
	w.tag(1)
	w.str(v.Type().String())

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			w.tag(1)
		} else {
			w.tag(0)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.uint(uint64(v.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.uint(v.Uint())

	case reflect.Float32, reflect.Float64:
		w.float(v.Float())

	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		w.float(real(c))
		w.float(imag(c))

	case reflect.String:
		w.str(v.String())

	case reflect.Array:
		w.uint(uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			if err := w.value(v.Index(i), depth+1); err != nil {
				return err
			}
		}

	case reflect.Slice:
		if v.IsNil() {
			w.tag(0)
			return nil
		}
		w.tag(1)
		w.uint(uint64(v.Len()))
		if v.Len() > 0 {
			leave, err := w.enter(visit{ptr: v.Pointer(), typ: v.Type(), n: v.Len()})
			if err != nil {
				return err
			}
			defer leave()
		}
		for i := 0; i < v.Len(); i++ {
			if err := w.value(v.Index(i), depth+1); err != nil {
				return err
			}
		}

	case reflect.Map:
		if v.IsNil() {
			w.tag(0)
			return nil
		}
		w.tag(1)
		w.uint(uint64(v.Len()))
		leave, err := w.enter(visit{ptr: v.Pointer(), typ: v.Type()})
		if err != nil {
			return err
		}
		defer leave()
		// Entries are hashed independently and combined in sorted order so
		// map iteration order does not leak into the key.
		entries := make([]uint64, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			c := w.child()
			if err := c.value(iter.Key(), depth+1); err != nil {
				return err
			}
			if err := c.value(iter.Value(), depth+1); err != nil {
				return err
			}
			entries = append(entries, c.d.Sum64())
		}
		slices.Sort(entries)
		for _, e := range entries {
			w.uint(e)
		}

	case reflect.Pointer:
		if v.IsNil() {
			w.tag(0)
			return nil
		}
		w.tag(1)
		leave, err := w.enter(visit{ptr: v.Pointer(), typ: v.Type()})
		if err != nil {
			return err
		}
		defer leave()
		return w.value(v.Elem(), depth+1)

	case reflect.Interface:
		if v.IsNil() {
			w.tag(0)
			return nil
		}
		w.tag(1)
		return w.value(v.Elem(), depth+1)

	case reflect.Struct:
		w.uint(uint64(v.NumField()))
		for i := 0; i < v.NumField(); i++ {
			if err := w.value(v.Field(i), depth+1); err != nil {
				return err
			}
		}

	default:
		// Func, Chan, UnsafePointer.
		return ErrUnhashable
	}
	return nil
}

func (w *walker) float(f float64) {
	if f == 0 {
		// +0 and -0 are DeepEqual.
		f = 0
	}
	w.uint(math.Float64bits(f))
}
