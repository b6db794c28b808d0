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

import "context"

// Callable is the calling contract shared by every function-like stand-in
// and every decorator wrapping one. A call may block (the Go rendition of a
// deferred result); implementations should honor ctx while blocked.
type Callable[A, R any] interface {
	Call(ctx context.Context, args A) (R, error)
}

// Func adapts an ordinary function to Callable.
type Func[A, R any] func(ctx context.Context, args A) (R, error)

// Call invokes f.
func (f Func[A, R]) Call(ctx context.Context, args A) (R, error) {
	return f(ctx, args)
}

// Ensure Func implements Callable.
var _ Callable[struct{}, struct{}] = Func[struct{}, struct{}](nil)

// Unwrapper is implemented by decorator wrappers so the chain can be walked
// from the outermost layer down to the raw stand-in.
type Unwrapper[A, R any] interface {
	Unwrap() Callable[A, R]
}
