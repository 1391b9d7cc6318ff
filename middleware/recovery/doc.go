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


// Package recovery provides middleware for recovering from panics in request handlers.
//
// The middleware catches panics raised further down the pipeline, logs them
// with a stack trace and answers 500 Internal Server Error instead of letting
// the panic unwind into the server.
//
// # Basic Usage
//
//	r := router.MustNew()
//	r.AddMiddleware(recovery.New())
//
// Add it last to a group (so that it runs first) to catch panics from every
// other middleware of that group and its descendants.
//
// # Configuration Options
//
//   - WithLogger: logger for panic messages (default slog.Default())
//   - WithoutLogging: disable panic logging
//   - WithHandler: custom response for recovered panics
//   - WithStackTrace: enable or disable stack capture (default: true)
//   - WithStackSize: maximum stack size in bytes (default: 4KB)
//   - WithPrettyStack: print the stack to stderr in readable form
//
// # OpenTelemetry Integration
//
// When the request context carries a span, the middleware records an
// exception event on it and sets its status to Error:
//
//   - exception.escaped: true
//   - exception.type: type of the panic value
//   - exception.message: string representation of the panic value
package recovery
