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
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jahau/router/route"
)

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for compile summaries, unmatched requests
// and pipeline errors. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
// Matched dispatches run inside a "router.dispatch" span.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Router) {
		r.tracerProvider = tp
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider used for the
// dispatch counter and duration histogram.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Router) {
		r.meterProvider = mp
	}
}

// WithPropagator sets the propagator ServeHTTP uses to extract trace context
// from incoming headers. The default is the global otel propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(r *Router) {
		r.propagator = p
	}
}

// WithDiagnostics sets a diagnostic handler for informational events.
//
// Example:
//
//	r := router.MustNew(router.WithDiagnostics(router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    log.Printf("[%s] %s", e.Kind, e.Message)
//	})))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// WithBloomFilterSize sets the size of the bloom filter guarding static
// route lookups. Larger sizes reduce false positives at the cost of memory.
// The size must be non-zero; New reports zero as a validation error.
func WithBloomFilterSize(size uint64) Option {
	return func(r *Router) {
		r.bloomFilterSize = size
	}
}

// WithBloomFilterHashFunctions sets the number of hash functions of the
// static route bloom filter. Values below one are clamped to one.
func WithBloomFilterHashFunctions(n int) Option {
	return func(r *Router) {
		if n < 1 {
			n = 1
		}
		r.bloomHashFunctions = n
	}
}

// WithMaxBodySize limits the request body ServeHTTP reads into memory.
// Larger bodies, including chunked ones without a Content-Length, are
// rejected with 413 before any middleware runs. A size of zero or less
// removes the limit. The default is DefaultMaxBodySize.
func WithMaxBodySize(size int64) Option {
	return func(r *Router) {
		r.maxBodySize = size
	}
}

// WithNotFoundHandler sets the fallback handler ServeHTTP passes to
// MatchingResult.Process. It answers unmatched requests and terminates the
// pipelines of routes registered without a handler.
func WithNotFoundHandler(h route.Handler) Option {
	return func(r *Router) {
		r.notFound = h
	}
}

// WithErrorHandler sets the function ServeHTTP calls when a pipeline
// returns an error. The default logs the error and answers with the status
// of errors implementing HTTPStatus() int, 500 otherwise.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) Option {
	return func(r *Router) {
		r.errorHandler = fn
	}
}
