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

// Package standin provides a registry of test doubles ("stand-ins") with
// composable behavior decorators, named snapshots and call-performance
// metrics.
//
// A test process builds one Registry and threads it through its setup and
// teardown code. Test bodies register stand-ins for real collaborators
// (functions, modules, UI components, reactive stores, API surfaces), look
// them up by id, kind or tag, and rely on snapshots to put the registry
// back between test cases.
//
// # Registering
//
// Register folds a list of decorators over a raw stand-in and stores the
// result. Decorators are typed; Decorators binds a decorator.Set to the
// registry so timing reports land in its tracker and auto-reset hooks run
// on its Reset:
//
//	r := standin.New(config.WithLogLevel("debug"))
//	d := standin.Decorators[UserID, User](r)
//
//	raw := fake.NewFunc[UserID, User](nil).Returns(alice)
//	svc, err := standin.Register[apis.Callable[UserID, User]](r, "users.get", apis.KindFunction, raw,
//		standin.Options[apis.Callable[UserID, User]]{
//			Tags:       []string{"integration"},
//			Decorators: []apis.Decorator[apis.Callable[UserID, User]]{d.Timing("users.get"), d.Retry(2)},
//		})
//
// The factory package wraps the common shapes so call sites stay short.
//
// # Between test cases
//
// The usual lifecycle is snapshot + reset before a case and restore +
// delete after it. The standintest package does both with t.Cleanup:
//
//	func TestCheckout(t *testing.T) {
//		standintest.Begin(t, r)
//		...
//	}
//
// Reset clears call history and configured behavior of every stand-in and
// puts store stand-ins with a baseline back to it. ClearCalls clears call
// history only.
//
// # Snapshots
//
// A snapshot is a shallow copy of the registry: it remembers which
// stand-in object was registered under which id. Restoring reinstalls
// those objects by reference; state changed inside a stand-in after the
// snapshot was taken is not rolled back. Global snapshots additionally
// capture and restore all performance metrics.
//
// # Concurrency model
//
// Lookups are lock-free: the record table is an immutable value published
// through an atomic pointer. Writers take a short build mutex, copy the
// table and swap the new one in. Decorators, the tracker and the snapshot
// manager guard their own state.
package standin
