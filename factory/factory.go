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

// Package factory registers the common stand-in shapes in one call.
// Factories hold no state of their own; everything they build lives in the
// registry they are given.
package factory

import (
	"context"
	"maps"
	"slices"

	"dirpx.dev/standin"
	"dirpx.dev/standin/apis"
	"dirpx.dev/standin/fake"
	"dirpx.dev/standin/registry"
)

// Function registers fn as a function stand-in.
func Function[A, R any](r *standin.Registry, id string, fn apis.Callable[A, R], opts ...standin.Options[apis.Callable[A, R]]) (apis.Callable[A, R], error) {
	return standin.Register(r, id, apis.KindFunction, fn, opts...)
}

// Module builds a fake.Module from members and registers it.
func Module(r *standin.Registry, id string, members map[string]any, opts ...standin.Options[*fake.Module]) (*fake.Module, error) {
	return standin.Register(r, id, apis.KindModule, fake.NewModule(members), opts...)
}

// Component registers c as a component stand-in. Decorators see c as a
// callable from props to rendered output.
func Component[P any](r *standin.Registry, id string, c *fake.Component[P], opts ...standin.Options[apis.Callable[P, string]]) (apis.Callable[P, string], error) {
	return standin.Register[apis.Callable[P, string]](r, id, apis.KindComponent, c, opts...)
}

// Store builds a fake.Store holding initial and registers it with initial
// as its baseline, so every registry Reset puts it back to initial.
func Store[S any](r *standin.Registry, id string, initial S, opts ...standin.Options[*fake.Store[S]]) (*fake.Store[S], error) {
	opts = append([]standin.Options[*fake.Store[S]]{{Baseline: initial}}, opts...)
	return standin.Register(r, id, apis.KindStore, fake.NewStore(initial), opts...)
}

// APIOptions configures API.
type APIOptions[A, R any] struct {
	// Tags label the API stand-in.
	Tags []string
	// Decorators are applied to every method.
	Decorators []apis.Decorator[apis.Callable[A, R]]
	// Methods holds extra decorators per method name, applied outside the
	// shared ones.
	Methods map[string][]apis.Decorator[apis.Callable[A, R]]
}

// API wraps every implementation in its own fake.Func, decorates each one
// independently and registers the resulting fake.API. Methods are
// decorated in sorted name order, which is the order decorators with side
// effects at decoration time (AutoReset) observe.
//
// The record lists the shared decorator names once, followed by each
// per-method decorator as "method/name".
func API[A, R any](r *standin.Registry, id string, methods map[string]func(context.Context, A) (R, error), opts APIOptions[A, R]) (*fake.API[A, R], error) {
	if err := registry.Validate(id, apis.KindAPI); err != nil {
		return nil, err
	}
	applied := make([]string, 0, len(opts.Decorators))
	for _, d := range opts.Decorators {
		applied = append(applied, d.Name)
	}
	wrapped := make(map[string]apis.Callable[A, R], len(methods))
	for _, name := range slices.Sorted(maps.Keys(methods)) {
		var own []string
		wrapped[name], _ = apis.Fold[apis.Callable[A, R]](fake.NewFunc(methods[name]), opts.Decorators...)
		wrapped[name], own = apis.Fold(wrapped[name], opts.Methods[name]...)
		for _, n := range own {
			applied = append(applied, name+"/"+n)
		}
	}
	return standin.Register(r, id, apis.KindAPI, fake.NewAPI(wrapped), standin.Options[*fake.API[A, R]]{
		Tags:    opts.Tags,
		Applied: applied,
	})
}
