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

package config_test

import (
	"bytes"
	"testing"
	"time"

	"dirpx.dev/standin/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.LogLevel != config.DefaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", got.LogLevel, config.DefaultLogLevel)
	}
	if got.LogFormat != config.DefaultLogFormat {
		t.Fatalf("LogFormat = %q, want %q", got.LogFormat, config.DefaultLogFormat)
	}
	if got.RetryPause != config.DefaultRetryPause {
		t.Fatalf("RetryPause = %v, want %v", got.RetryPause, config.DefaultRetryPause)
	}
	if got.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want %d", got.CacheSize, config.DefaultCacheSize)
	}
	if got.Clock != nil {
		t.Fatalf("Clock = non-nil, want nil")
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got.LogLevel != def.LogLevel || got.LogFormat != def.LogFormat ||
		got.RetryPause != def.RetryPause || got.CacheSize != def.CacheSize {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithLogLevel(t *testing.T) {
	c := config.NewConfig(config.WithLogLevel("debug"))
	if c.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", c.LogLevel)
	}

	c2 := config.NewConfig(config.WithLogLevel("verbose"))
	if c2.LogLevel != config.DefaultLogLevel {
		t.Fatalf("LogLevel = %q, want default", c2.LogLevel)
	}
}

func TestWithLogFormatAndOutput(t *testing.T) {
	var buf bytes.Buffer
	c := config.NewConfig(config.WithLogFormat("json"), config.WithLogOutput(&buf))
	if c.LogFormat != "json" {
		t.Fatalf("LogFormat = %q, want json", c.LogFormat)
	}
	if c.LogOutput != &buf {
		t.Fatalf("LogOutput not applied")
	}

	c2 := config.NewConfig(config.WithLogFormat("xml"))
	if c2.LogFormat != config.DefaultLogFormat {
		t.Fatalf("LogFormat = %q, want default", c2.LogFormat)
	}
}

func TestWithRetryPause_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithRetryPause(5 * time.Millisecond))
	if c.RetryPause != 5*time.Millisecond {
		t.Fatalf("RetryPause = %v, want 5ms", c.RetryPause)
	}
	c2 := config.NewConfig(config.WithRetryPause(-time.Second))
	if c2.RetryPause != config.DefaultRetryPause {
		t.Fatalf("RetryPause = %v, want default", c2.RetryPause)
	}
}

func TestWithCacheSize_NonPositive_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithCacheSize(4))
	if c.CacheSize != 4 {
		t.Fatalf("CacheSize = %d, want 4", c.CacheSize)
	}
	c2 := config.NewConfig(config.WithCacheSize(0))
	if c2.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want default", c2.CacheSize)
	}
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c := config.NewConfig(config.WithClock(func() time.Time { return fixed }))
	if got := c.Clock.Now(); !got.Equal(fixed) {
		t.Fatalf("Clock.Now() = %v, want %v", got, fixed)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("STANDIN_LOG_LEVEL", "warn")
	t.Setenv("STANDIN_LOG_FORMAT", "json")
	t.Setenv("STANDIN_RETRY_PAUSE", "25ms")
	t.Setenv("STANDIN_CACHE_SIZE", "7")

	c, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: unexpected error: %v", err)
	}
	if c.LogLevel != "warn" || c.LogFormat != "json" {
		t.Fatalf("log = (%q,%q), want (warn,json)", c.LogLevel, c.LogFormat)
	}
	if c.RetryPause != 25*time.Millisecond {
		t.Fatalf("RetryPause = %v, want 25ms", c.RetryPause)
	}
	if c.CacheSize != 7 {
		t.Fatalf("CacheSize = %d, want 7", c.CacheSize)
	}
}

func TestFromEnv_OptionsOverrideEnvironment(t *testing.T) {
	t.Setenv("STANDIN_CACHE_SIZE", "7")

	c, err := config.FromEnv(config.WithCacheSize(3))
	if err != nil {
		t.Fatalf("FromEnv: unexpected error: %v", err)
	}
	if c.CacheSize != 3 {
		t.Fatalf("CacheSize = %d, want 3", c.CacheSize)
	}
}

func TestFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("STANDIN_CACHE_SIZE", "many")

	if _, err := config.FromEnv(); err == nil {
		t.Fatalf("FromEnv: expected error for non-numeric cache size")
	}
}
