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

package config

import (
	"io"
	"time"

	"dirpx.dev/standin/apis"
)

const (
	// DefaultLogLevel represents the default for LogLevel.
	DefaultLogLevel = "info"
	// DefaultLogFormat represents the default for LogFormat.
	DefaultLogFormat = "text"
	// DefaultRetryPause represents the default for RetryPause.
	// Zero retries immediately.
	DefaultRetryPause = time.Duration(0)
	// DefaultCacheSize represents the default for CacheSize.
	DefaultCacheSize = 128
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return normalize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		RetryPause: DefaultRetryPause,
		CacheSize:  DefaultCacheSize,
	}
}

// normalize replaces out-of-range values with defaults.
func normalize(cfg apis.Config) apis.Config {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat != "json" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.RetryPause < 0 {
		cfg.RetryPause = DefaultRetryPause
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithLogLevel sets the LogLevel option.
// Unknown levels fall back to the default.
func WithLogLevel(level string) Option {
	return func(c *apis.Config) {
		c.LogLevel = level
	}
}

// WithLogFormat sets the LogFormat option ("text" or "json").
func WithLogFormat(format string) Option {
	return func(c *apis.Config) {
		c.LogFormat = format
	}
}

// WithLogOutput sets the writer log records go to.
func WithLogOutput(w io.Writer) Option {
	return func(c *apis.Config) {
		c.LogOutput = w
	}
}

// WithRetryPause sets the RetryPause option.
// A negative value resets to the default.
func WithRetryPause(d time.Duration) Option {
	return func(c *apis.Config) {
		c.RetryPause = d
	}
}

// WithCacheSize sets the CacheSize option.
// A non-positive value resets to the default.
func WithCacheSize(n int) Option {
	return func(c *apis.Config) {
		c.CacheSize = n
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(c *apis.Config) {
		c.Clock = now
	}
}
