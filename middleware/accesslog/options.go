// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package accesslog

import (
	"log/slog"
	"time"
)

// Option configures the access log middleware.
type Option func(*config)

// WithLogger sets the logger entries are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithExcludePaths skips logging for the given exact paths.
//
// Example:
//
//	accesslog.New(accesslog.WithLogger(logger), accesslog.WithExcludePaths("/health", "/metrics"))
func WithExcludePaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.excludePaths[p] = struct{}{}
		}
	}
}

// WithSlowThreshold marks requests slower than d as slow and logs them at
// warn level. Zero disables slow request detection.
func WithSlowThreshold(d time.Duration) Option {
	return func(cfg *config) {
		cfg.slowThreshold = d
	}
}

// WithErrorsOnly logs only failed requests and 4xx/5xx responses.
// Slow requests are still logged.
func WithErrorsOnly() Option {
	return func(cfg *config) {
		cfg.errorsOnly = true
	}
}
