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

// Decorator is a named transformation T -> T that adds one behavior to a
// stand-in without changing its external calling contract.
//
// A list of decorators is folded in order: decorator i+1 wraps the result of
// decorator i, so the last decorator in the list is the outermost layer.
type Decorator[T any] struct {
	// Name identifies the decorator in StandInRecord.Decorators.
	Name string
	// Wrap produces the decorated value. A nil Wrap is the identity.
	Wrap func(T) T
}

// Apply runs the decorator on v.
func (d Decorator[T]) Apply(v T) T {
	if d.Wrap == nil {
		return v
	}
	return d.Wrap(v)
}

// Fold applies decorators to v in list order and returns the result along
// with the ordered decorator names.
func Fold[T any](v T, decorators ...Decorator[T]) (T, []string) {
	names := make([]string, 0, len(decorators))
	for _, d := range decorators {
		v = d.Apply(v)
		names = append(names, d.Name)
	}
	return v, names
}
