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
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"dirpx.dev/standin/apis"
)

// envConfig mirrors the environment-settable subset of apis.Config.
type envConfig struct {
	LogLevel   string        `env:"STANDIN_LOG_LEVEL" envDefault:"info"`
	LogFormat  string        `env:"STANDIN_LOG_FORMAT" envDefault:"text"`
	RetryPause time.Duration `env:"STANDIN_RETRY_PAUSE" envDefault:"0s"`
	CacheSize  int           `env:"STANDIN_CACHE_SIZE" envDefault:"128"`
}

// FromEnv loads configuration from STANDIN_* environment variables and then
// applies opts on top, so explicit options win over the environment.
func FromEnv(opts ...Option) (apis.Config, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return apis.Config{}, fmt.Errorf("standin(config): parse env: %w", err)
	}
	cfg := apis.Config{
		LogLevel:   ec.LogLevel,
		LogFormat:  ec.LogFormat,
		RetryPause: ec.RetryPause,
		CacheSize:  ec.CacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return normalize(cfg), nil
}
