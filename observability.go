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
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jahau/router/message"
)

// instrumentationName identifies the router's tracer and meter.
const instrumentationName = "github.com/jahau/router"

// Dispatch outcomes recorded on the dispatch counter.
const (
	outcomeMatched          = "matched"
	outcomeNotFound         = "not_found"
	outcomeMethodNotAllowed = "method_not_allowed"
	outcomeError            = "error"
)

// observability holds the router's tracer and metric instruments.
type observability struct {
	tracer   trace.Tracer
	count    metric.Int64Counter
	duration metric.Float64Histogram
}

func newObservability(tp trace.TracerProvider, mp metric.MeterProvider) (*observability, error) {
	meter := mp.Meter(instrumentationName)

	count, err := meter.Int64Counter("router.dispatch.count",
		metric.WithDescription("Number of dispatched requests by route and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("router.dispatch.duration",
		metric.WithDescription("Time spent in the route pipeline"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &observability{
		tracer:   tp.Tracer(instrumentationName),
		count:    count,
		duration: duration,
	}, nil
}

// startSpan opens the dispatch span for a matched route.
func (o *observability) startSpan(ctx context.Context, e *entry) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("http.route", e.pattern.String()),
		attribute.String("http.request.method", e.method),
	}
	if name := e.route.Name(); name != "" {
		attrs = append(attrs, attribute.String("route.name", name))
	}

	return o.tracer.Start(ctx, "router.dispatch",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// endSpan records the pipeline result on the span. The caller ends it.
func (o *observability) endSpan(span trace.Span, resp *message.Response, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))
		if resp.StatusCode() >= 500 {
			span.SetStatus(codes.Error, resp.ReasonPhrase())
		}
	}
}

// record adds one dispatch to the counter and histogram.
// Unmatched requests are recorded with an empty route.
func (o *observability) record(ctx context.Context, routePattern, outcome string, start time.Time) {
	set := metric.WithAttributeSet(attribute.NewSet(
		attribute.String("route", routePattern),
		attribute.String("outcome", outcome),
	))
	o.count.Add(ctx, 1, set)
	o.duration.Record(ctx, time.Since(start).Seconds(), set)
}
