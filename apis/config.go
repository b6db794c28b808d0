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

import (
	"io"
	"time"
)

// Config carries the knobs a registry is built with.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string

	// LogFormat is "text" or "json".
	LogFormat string

	// LogOutput receives log records. Nil discards them.
	LogOutput io.Writer

	// RetryPause is the pause between attempts of registry-bound Retry decorators.
	RetryPause time.Duration

	// CacheSize is the capacity used by registry-bound Cache decorators when
	// the caller passes a non-positive size.
	CacheSize int

	// Clock supplies the current time for record timestamps, breakers and
	// timing. Nil means time.Now.
	Clock Clock
}
