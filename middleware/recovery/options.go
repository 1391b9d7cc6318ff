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


package recovery

import (
	"log/slog"

	"github.com/jahau/router/message"
)

// Option configures the recovery middleware.
type Option func(*config)

// WithoutLogging disables panic logging.
//
// Example:
//
//	recovery.New(recovery.WithoutLogging())
func WithoutLogging() Option {
	return func(cfg *config) {
		cfg.logger = nil
	}
}

// WithLogger sets a custom slog.Logger for panic logging.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	recovery.New(recovery.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithHandler sets the function producing the response for a recovered panic.
//
// Example:
//
//	recovery.New(recovery.WithHandler(func(req *message.Request, err any) *message.Response {
//	    return message.Text(http.StatusInternalServerError, "request "+requestid.Get(req)+" failed")
//	}))
func WithHandler(handler func(req *message.Request, err any) *message.Response) Option {
	return func(cfg *config) {
		cfg.handler = handler
	}
}

// WithStackTrace enables or disables stack trace capture.
// Default: true
func WithStackTrace(enabled bool) Option {
	return func(cfg *config) {
		cfg.stackTrace = enabled
	}
}

// WithStackSize sets the maximum size of the stack trace in bytes.
// Default: 4KB
//
// Example:
//
//	recovery.New(recovery.WithStackSize(8 << 10)) // 8KB
func WithStackSize(size int) Option {
	return func(cfg *config) {
		cfg.stackSize = size
	}
}

// WithPrettyStack controls whether stack traces are printed to stderr in
// readable form instead of being attached to the log entry.
// By default the choice follows whether stderr is a terminal.
func WithPrettyStack(enabled bool) Option {
	return func(cfg *config) {
		cfg.prettyStack = &enabled
	}
}
