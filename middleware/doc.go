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


// Package middleware holds adapters for writing route middleware as plain
// functions. The subpackages provide ready-made middleware:
//
//   - recovery: converts panics into 500 responses
//   - requestid: assigns a request ID and echoes it on the response
//   - accesslog: logs one structured line per request
//   - basicauth: HTTP Basic authentication
//   - bodylimit: rejects oversized request bodies
//   - compression: gzip and brotli response compression
//
// All of them implement route.Middleware and can be added to any group:
//
//	api.AddMiddleware(accesslog.New(accesslog.WithLogger(logger)))
//	api.AddMiddleware(requestid.New())
//	api.AddMiddleware(recovery.New())
//
// The last middleware added to a group runs first, so recovery above wraps
// the other two.
package middleware
