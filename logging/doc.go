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


// Package logging builds log/slog loggers for the router and its demo
// service, and correlates log lines with OpenTelemetry spans.
//
// Loggers are plain *slog.Logger values; the router accepts any of them.
//
//	logger, err := logging.New(logging.Config{
//	    Format:      logging.JSONHandler,
//	    Level:       "debug",
//	    ServiceName: "routerdemo",
//	})
//
// Inside a traced request, FromContext adds trace_id and span_id:
//
//	logging.FromContext(ctx, logger).Info("user loaded", "id", id)
package logging
