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


// Package compression provides response compression middleware.
//
// Responses are compressed with brotli or gzip according to the request's
// Accept-Encoding header, brotli preferred. Small bodies, already encoded
// responses and non-text content types are left alone.
//
// # Basic Usage
//
//	r := router.MustNew()
//	r.AddMiddleware(compression.New())
//
// # Configuration Options
//
//   - WithGzipLevel / WithBrotliLevel: compression levels
//   - WithGzipDisabled / WithBrotliDisabled: turn an algorithm off
//   - WithMinSize: minimum body size to compress (default: 1KB)
//   - WithExcludePaths: paths never compressed (e.g., /metrics)
//   - WithContentTypes: compressible content type prefixes
package compression
