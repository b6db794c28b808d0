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

package builder

import (
	"io"
	"log/slog"

	"dirpx.dev/standin/apis"
	"dirpx.dev/standin/perf"
	"dirpx.dev/standin/registry"
	"dirpx.dev/standin/snapshot"
)

// Parts are the components a registry facade is assembled from.
type Parts struct {
	Logger    *slog.Logger
	Records   *registry.Registry
	Tracker   *perf.Tracker
	Snapshots *snapshot.Manager
}

// Build creates fresh, wired components for cfg. Every component shares
// cfg.Clock; the snapshot manager captures Records and, for global
// snapshots, Tracker.
func Build(cfg apis.Config) Parts {
	recs := registry.New(cfg.Clock)
	tr := perf.New(cfg.Clock)
	return Parts{
		Logger:    NewLogger(cfg),
		Records:   recs,
		Tracker:   tr,
		Snapshots: snapshot.New(recs, tr, cfg.Clock),
	}
}

// NewLogger builds an isolated slog.Logger from the logging fields of cfg.
// It does not touch the process-wide default logger. A nil LogOutput
// discards records.
func NewLogger(cfg apis.Config) *slog.Logger {
	if cfg.LogOutput == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(newHandler(cfg.LogLevel, cfg.LogFormat, cfg.LogOutput))
}

func newHandler(levelStr, formatStr string, w io.Writer) slog.Handler {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
