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

// Package decorator provides composable behaviors for callable stand-ins.
//
// Every constructor returns an apis.Decorator[apis.Callable[A, R]]. A list of
// decorators is folded in order, so for []Decorator{A, B} the layer built by
// B wraps the layer built by A, which wraps the raw stand-in. A failing call
// therefore surfaces through A first and B second.
//
// Each layer is an exported type holding its own observable state (recorded
// arguments, durations, breaker state, ...). Use As to find a layer in a
// decorated value:
//
//	b, ok := decorator.As[*decorator.Breaker[Req, Resp]](svc)
//
// ClearCalls on any layer clears call history along the whole chain and
// leaves configured behavior alone. Reset additionally returns stateful
// layers (call limit, cache, circuit breaker) and the raw stand-in to their
// initial behavior.
package decorator
