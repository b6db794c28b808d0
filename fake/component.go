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
	"context"
	"slices"
	"sync"

	"dirpx.dev/standin/apis"
)

// Component is a UI component stand-in: it renders props to a string and
// records every set of props it was rendered with. It is also a Callable so
// it can be decorated like any function stand-in.
type Component[P any] struct {
	mu      sync.Mutex
	name    string
	render  func(P) string
	renders []P
}

// Ensure Component implements the stand-in contracts.
var (
	_ apis.Callable[int, string] = (*Component[int])(nil)
	_ apis.CallClearer           = (*Component[int])(nil)
	_ apis.Resetter              = (*Component[int])(nil)
)

// NewComponent returns a Component called name. A nil render produces
// "<name/>".
func NewComponent[P any](name string, render func(P) string) *Component[P] {
	return &Component[P]{name: name, render: render}
}

// Name returns the component name.
func (c *Component[P]) Name() string { return c.name }

// Render records props and returns the rendered output.
func (c *Component[P]) Render(props P) string {
	c.mu.Lock()
	c.renders = append(c.renders, props)
	render := c.render
	c.mu.Unlock()

	if render == nil {
		return "<" + c.name + "/>"
	}
	return render(props)
}

// Call renders props; it never fails.
func (c *Component[P]) Call(_ context.Context, props P) (string, error) {
	return c.Render(props), nil
}

// Renders returns recorded props in render order.
func (c *Component[P]) Renders() []P {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.renders)
}

// RenderCount returns the number of renders.
func (c *Component[P]) RenderCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.renders)
}

// ClearCalls forgets recorded renders.
func (c *Component[P]) ClearCalls() {
	c.mu.Lock()
	c.renders = nil
	c.mu.Unlock()
}

// Reset forgets recorded renders. A Component has no other mutable state.
func (c *Component[P]) Reset() { c.ClearCalls() }
