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


package compression

// Option configures the compression middleware.
type Option func(*config)

// WithGzipLevel sets the gzip level (gzip.BestSpeed to gzip.BestCompression).
func WithGzipLevel(level int) Option {
	return func(cfg *config) {
		cfg.gzipLevel = level
	}
}

// WithBrotliLevel sets the brotli quality (0 to 11).
func WithBrotliLevel(level int) Option {
	return func(cfg *config) {
		cfg.brotliLevel = level
	}
}

// WithBrotliDisabled disables brotli.
func WithBrotliDisabled() Option {
	return func(cfg *config) {
		cfg.enableBrotli = false
	}
}

// WithGzipDisabled disables gzip.
func WithGzipDisabled() Option {
	return func(cfg *config) {
		cfg.enableGzip = false
	}
}

// WithMinSize sets the minimum body size in bytes worth compressing.
func WithMinSize(size int) Option {
	return func(cfg *config) {
		cfg.minSize = size
	}
}

// WithExcludePaths disables compression for the given exact paths.
func WithExcludePaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.excludePaths[p] = struct{}{}
		}
	}
}

// WithContentTypes replaces the list of compressible content type prefixes.
func WithContentTypes(prefixes ...string) Option {
	return func(cfg *config) {
		cfg.contentTypes = prefixes
	}
}
