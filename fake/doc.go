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

// Package fake provides ready-made stand-ins for the five registry kinds:
// Func (function), Module, Component, Store and API.
//
// Every stand-in keeps a call history and implements apis.CallClearer and
// apis.Resetter, so registry-wide ClearCalls and Reset reach it. Store also
// implements apis.Restorer so a registry reset can put it back to its
// baseline. All types are safe for concurrent use.
package fake

import "errors"

var (
	// ErrNoMethod is returned by API.Call for an unknown method name.
	ErrNoMethod = errors.New("standin(fake): no such method")
	// ErrBaselineType is returned by Store.Restore for a baseline of the wrong type.
	ErrBaselineType = errors.New("standin(fake): baseline has wrong type")
)
