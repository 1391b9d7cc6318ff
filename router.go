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


package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jahau/router/route"
)

const (
	// defaultBloomFilterSize is the default size for bloom filters used in static route lookup.
	defaultBloomFilterSize = 1000

	// defaultBloomHashFunctions is the default number of hash functions for bloom filters.
	defaultBloomHashFunctions = 3

	// DefaultMaxBodySize is the request body limit ServeHTTP applies unless
	// WithMaxBodySize says otherwise.
	DefaultMaxBodySize = 10 << 20
)

// Router collects routes into a group tree, compiles them into a routing
// table and dispatches requests through the matched route's pipeline.
//
// Registration happens on a single goroutine before the first Compile or
// Match. After compilation the router is frozen: the group tree is sealed,
// further registrations panic with ErrRouterFrozen, and Match, Process and
// ServeHTTP are safe for concurrent use.
//
// Call Compile or MustCompile once registration is done. A router that
// fails to compile matches nothing, and ServeHTTP hands the compile error
// to the error handler on every request.
type Router struct {
	root *route.Group

	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	propagator     propagation.TextMapPropagator
	diagnostics    DiagnosticHandler

	bloomFilterSize    uint64
	bloomHashFunctions int
	maxBodySize        int64

	notFound     route.Handler
	errorHandler func(http.ResponseWriter, *http.Request, error)

	obs *observability

	mu         sync.Mutex
	compileErr error
	table      atomic.Pointer[table]
}

// New creates a new router with the given options.
// It returns an error if the configuration is invalid or the telemetry
// instruments cannot be created.
//
// Example:
//
//	r, err := router.New(
//	    router.WithLogger(logger),
//	    router.WithTracerProvider(tp),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) (*Router, error) {
	r := &Router{
		root:               route.NewGroup(""),
		logger:             slog.New(slog.DiscardHandler),
		tracerProvider:     tracenoop.NewTracerProvider(),
		meterProvider:      metricnoop.NewMeterProvider(),
		bloomFilterSize:    defaultBloomFilterSize,
		bloomHashFunctions: defaultBloomHashFunctions,
		maxBodySize:        DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("router configuration validation failed: %w", err)
	}

	if r.notFound == nil {
		r.notFound = NotFoundHandler()
	}
	if r.errorHandler == nil {
		r.errorHandler = r.defaultErrorHandler
	}
	if r.propagator == nil {
		r.propagator = otel.GetTextMapPropagator()
	}

	obs, err := newObservability(r.tracerProvider, r.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("router telemetry setup failed: %w", err)
	}
	r.obs = obs

	return r, nil
}

// MustNew creates a new router and panics if the configuration is invalid.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("router.MustNew: %v", err))
	}
	return r
}

// validate checks the router configuration for common errors.
func (r *Router) validate() error {
	if r.bloomFilterSize == 0 {
		return ErrBloomFilterSizeZero
	}
	if r.logger == nil {
		return fmt.Errorf("logger: %w", ErrNilOption)
	}
	if r.tracerProvider == nil {
		return fmt.Errorf("tracer provider: %w", ErrNilOption)
	}
	if r.meterProvider == nil {
		return fmt.Errorf("meter provider: %w", ErrNilOption)
	}
	return nil
}

// Root returns the root group. Its prefix is empty and its middleware wraps
// every route.
func (r *Router) Root() *route.Group {
	return r.root
}

// AddRoute appends a route to the root group.
func (r *Router) AddRoute(rt *route.Route) *Router {
	r.mustNotBeFrozen()
	r.root.AddRoute(rt)
	return r
}

// AddGroup appends an existing group to the root group.
func (r *Router) AddGroup(g *route.Group) *Router {
	r.mustNotBeFrozen()
	r.root.AddGroup(g)
	return r
}

// AddGroupFunc appends a group built by fn to the root group.
func (r *Router) AddGroupFunc(prefix string, fn func(route.Collector)) *Router {
	r.mustNotBeFrozen()
	r.root.AddGroupFunc(prefix, fn)
	return r
}

// AddMiddleware pushes middleware onto the root group's stack.
// Root middleware runs before the middleware of every nested group.
func (r *Router) AddMiddleware(m route.Middleware) *Router {
	r.mustNotBeFrozen()
	r.root.AddMiddleware(m)
	return r
}

// Collect passes a collector for the root group to fn.
//
// Example:
//
//	r.Collect(func(c route.Collector) {
//	    c.AddRoute(route.MustNew(route.GET, "/", home))
//	})
func (r *Router) Collect(fn func(route.Collector)) *Router {
	r.mustNotBeFrozen()
	fn(r.root.Collector())
	return r
}

// Frozen reports whether the routing table has been compiled.
func (r *Router) Frozen() bool {
	return r.table.Load() != nil
}

func (r *Router) mustNotBeFrozen() {
	if r.Frozen() {
		panic(ErrRouterFrozen)
	}
}
