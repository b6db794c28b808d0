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

// Package standintest wires a standin.Registry into the testing package's
// lifecycle.
//
//	var reg = standin.New()
//
//	func TestCheckout(t *testing.T) {
//		standintest.Begin(t, reg)
//		// register, call, assert ...
//	}
//
// Begin snapshots the registry and resets it; when the test finishes the
// snapshot is restored and deleted, so stand-ins registered by the test
// disappear and the ones that existed before it come back.
package standintest

import (
	"testing"

	"github.com/google/uuid"

	"dirpx.dev/standin"
)

// Begin snapshots r under a unique name, resets it and registers a cleanup
// that restores and deletes the snapshot. It returns the snapshot name.
func Begin(t testing.TB, r *standin.Registry) string {
	t.Helper()
	return begin(t, r, false)
}

// BeginGlobal is Begin with a global snapshot, so performance metrics
// recorded during the test are rolled back as well.
func BeginGlobal(t testing.TB, r *standin.Registry) string {
	t.Helper()
	return begin(t, r, true)
}

func begin(t testing.TB, r *standin.Registry, global bool) string {
	t.Helper()
	id := "standintest/" + t.Name() + "/" + uuid.NewString()

	create, restore := r.CreateSnapshot, r.RestoreSnapshot
	if global {
		create, restore = r.CreateGlobalSnapshot, r.RestoreGlobalSnapshot
	}
	if err := create(id); err != nil {
		t.Fatalf("standintest: snapshot %q: %v", id, err)
	}
	if err := r.Reset(); err != nil {
		t.Errorf("standintest: reset: %v", err)
	}

	t.Cleanup(func() {
		if !restore(id) {
			t.Errorf("standintest: snapshot %q vanished before cleanup", id)
		}
		r.DeleteSnapshot(id)
	})
	return id
}
