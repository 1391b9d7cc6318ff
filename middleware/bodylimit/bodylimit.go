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


package bodylimit

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

// DefaultMaxSize is the limit used when WithMaxSize is not given.
const DefaultMaxSize = 2 << 20

// ErrBodyTooLarge is passed to the error handler when a body exceeds the limit.
var ErrBodyTooLarge = errors.New("request body too large")

// Option configures the body limit middleware.
type Option func(*config)

type config struct {
	maxSize      int64
	skipPaths    map[string]struct{}
	errorHandler func(req *message.Request, err error) *message.Response
}

// WithMaxSize sets the maximum body size in bytes.
func WithMaxSize(size int64) Option {
	return func(cfg *config) {
		cfg.maxSize = size
	}
}

// WithSkipPaths sets paths that are not limited.
func WithSkipPaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.skipPaths[p] = struct{}{}
		}
	}
}

// WithErrorHandler sets the response for oversized requests. err wraps
// ErrBodyTooLarge.
func WithErrorHandler(fn func(req *message.Request, err error) *message.Response) Option {
	return func(cfg *config) {
		cfg.errorHandler = fn
	}
}

// New returns body limit middleware. It panics if the configured size is not positive.
func New(opts ...Option) route.Middleware {
	cfg := &config{
		maxSize:   DefaultMaxSize,
		skipPaths: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.maxSize <= 0 {
		panic(fmt.Sprintf("bodylimit: max size must be positive, got %d", cfg.maxSize))
	}

	return route.MiddlewareFunc(func(req *message.Request, next route.Handler) (*message.Response, error) {
		if _, skip := cfg.skipPaths[req.Path()]; skip {
			return next.Handle(req)
		}

		size := int64(req.BodyLen())
		if cl, err := strconv.ParseInt(req.HeaderLine("Content-Length"), 10, 64); err == nil && cl > size {
			size = cl
		}
		if size <= cfg.maxSize {
			return next.Handle(req)
		}

		err := fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrBodyTooLarge, size, cfg.maxSize)
		if cfg.errorHandler != nil {
			if resp := cfg.errorHandler(req, err); resp != nil {
				return resp, nil
			}
		}
		return message.Text(http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge)), nil
	})
}
