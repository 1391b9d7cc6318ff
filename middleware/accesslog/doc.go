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


// Package accesslog provides middleware for structured access logging.
//
// One log entry is written per request after the rest of the pipeline has
// answered. Entries carry the method, path, status, duration and, when the
// requestid middleware ran first, the request ID. Inside a traced dispatch
// the trace_id and span_id fields are added as well.
//
// # Basic Usage
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	r := router.MustNew()
//	r.AddMiddleware(accesslog.New(accesslog.WithLogger(logger)))
//
// # Levels
//
// Requests that fail with an error or a 5xx status are logged at error
// level, 4xx statuses and slow requests at warn level, everything else at
// info level.
//
// # Configuration Options
//
//   - WithLogger: structured logger for output (required; nil disables logging)
//   - WithExcludePaths: exact paths to skip (e.g., /health, /metrics)
//   - WithSlowThreshold: duration above which a request is logged as slow
//   - WithErrorsOnly: log only failed requests and 4xx/5xx responses
package accesslog
