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


package requestid

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

const (
	// DefaultHeader is the header carrying the request ID.
	DefaultHeader = "X-Request-ID"

	// AttributeKey is the request attribute holding the request ID.
	AttributeKey = "request_id"
)

// Option defines functional options for requestid middleware configuration.
type Option func(*config)

type config struct {
	headerName    string
	generator     func() string
	allowClientID bool
}

func defaultConfig() *config {
	return &config{
		headerName:    DefaultHeader,
		generator:     generateUUIDv7,
		allowClientID: true,
	}
}

// generateUUIDv7 generates a time-ordered UUID v7 string (RFC 9562).
func generateUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ulidEntropy provides monotonic ordering within the same millisecond.
var (
	ulidEntropy     = ulid.Monotonic(rand.Reader, 0)
	ulidEntropyLock sync.Mutex
)

func generateULID() string {
	ulidEntropyLock.Lock()
	defer ulidEntropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// WithHeader sets the header name. Default: X-Request-ID.
func WithHeader(name string) Option {
	return func(cfg *config) {
		cfg.headerName = name
	}
}

// WithGenerator sets a custom ID generator.
//
// Example:
//
//	requestid.New(requestid.WithGenerator(func() string {
//	    return fmt.Sprintf("req-%d", time.Now().UnixNano())
//	}))
func WithGenerator(fn func() string) Option {
	return func(cfg *config) {
		cfg.generator = fn
	}
}

// WithULID generates ULIDs instead of UUIDs.
func WithULID() Option {
	return WithGenerator(generateULID)
}

// WithAllowClientID controls whether an ID sent by the client is kept.
// Default: true
func WithAllowClientID(allow bool) Option {
	return func(cfg *config) {
		cfg.allowClientID = allow
	}
}

// New returns middleware that adds a request ID to each request.
func New(opts ...Option) route.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.generator == nil {
		cfg.generator = generateUUIDv7
	}

	return route.MiddlewareFunc(func(req *message.Request, next route.Handler) (*message.Response, error) {
		var id string
		if cfg.allowClientID {
			id = req.HeaderLine(cfg.headerName)
		}
		if id == "" {
			id = cfg.generator()
		}

		req = req.WithHeader(cfg.headerName, id).WithAttribute(AttributeKey, id)

		resp, err := next.Handle(req)
		if resp != nil {
			resp = resp.WithHeader(cfg.headerName, id)
		}
		return resp, err
	})
}

// Get returns the request ID, or "" if none was assigned.
func Get(req *message.Request) string {
	if v, ok := req.Attribute(AttributeKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
