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

package apis

// Kind tags the shape of a registered stand-in.
type Kind string

const (
	KindFunction  Kind = "function"
	KindModule    Kind = "module"
	KindComponent Kind = "component"
	KindStore     Kind = "store"
	KindAPI       Kind = "api"
)

// Kinds lists every known Kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindFunction, KindModule, KindComponent, KindStore, KindAPI}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFunction, KindModule, KindComponent, KindStore, KindAPI:
		return true
	}
	return false
}

// CallClearer is implemented by stand-ins that keep call history.
// ClearCalls forgets recorded calls (counts, arguments) but keeps any
// configured return or failure behavior.
type CallClearer interface {
	ClearCalls()
}

// Resetter is implemented by stand-ins whose full state can be reset:
// call history plus configured behavior and any decorator-local state.
type Resetter interface {
	Reset()
}

// Restorer is implemented by store-like stand-ins that can be put back to a
// baseline value. Implementations return an error when baseline has the
// wrong type.
type Restorer interface {
	Restore(baseline any) error
}

// HookRegistrar accepts callbacks that run at the boundary between test
// cases (on registry reset).
type HookRegistrar interface {
	AddResetHook(fn func())
}
