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

import "time"

// Tracker receives per-call timing reports from timing-aware decorators.
// Implementations must be safe for concurrent use.
type Tracker interface {
	// TrackPerformance records one call of id that took d and possibly failed.
	TrackPerformance(id string, d time.Duration, didError bool)
}

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

// Now returns c() or time.Now() when c is nil.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
