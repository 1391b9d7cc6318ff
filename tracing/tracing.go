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


package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Provider selects the span exporter.
type Provider string

const (
	// NoopProvider creates spans without exporting them.
	NoopProvider Provider = "noop"
	// StdoutProvider prints spans as JSON.
	StdoutProvider Provider = "stdout"
	// OTLPProvider exports over OTLP/gRPC.
	OTLPProvider Provider = "otlp"
	// OTLPHTTPProvider exports over OTLP/HTTP.
	OTLPHTTPProvider Provider = "otlp-http"
)

// ErrUnsupportedProvider indicates an unknown Provider value.
var ErrUnsupportedProvider = errors.New("unsupported tracing provider")

// Config configures a tracer provider.
type Config struct {
	// Provider selects the exporter. Empty means NoopProvider.
	Provider Provider
	// Endpoint is the OTLP collector address, host:port or a URL.
	Endpoint string
	// Insecure disables TLS for OTLP/gRPC.
	Insecure bool
	// SampleRate is the fraction of new traces sampled, in (0, 1].
	// Zero means 1. Sampling decisions of remote parents are honoured.
	SampleRate float64
	// Output receives StdoutProvider spans. Nil means os.Stdout.
	Output io.Writer

	ServiceName    string
	ServiceVersion string
}

// NewProvider creates a tracer provider. The caller owns it and must call
// Shutdown to flush pending spans.
func NewProvider(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	rate := cfg.SampleRate
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("tracing: sample rate must be in (0, 1], got %v", rate)
	}
	if rate == 0 {
		rate = 1
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(createResource(cfg.ServiceName, cfg.ServiceVersion)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Provider {
	case NoopProvider, "":
		return nil, nil

	case StdoutProvider:
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		return exporter, nil

	case OTLPProvider:
		var opts []otlptracegrpc.Option
		if cfg.Endpoint != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP gRPC exporter: %w", err)
		}
		return exporter, nil

	case OTLPHTTPProvider:
		var opts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			endpoint, plain := splitEndpoint(cfg.Endpoint)
			opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
			if plain || cfg.Insecure {
				opts = append(opts, otlptracehttp.WithInsecure())
			}
		}
		exporter, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP HTTP exporter: %w", err)
		}
		return exporter, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}

// splitEndpoint strips scheme and path from an endpoint URL, reporting
// whether the scheme was plain http.
func splitEndpoint(endpoint string) (hostport string, plain bool) {
	if trimmed, ok := strings.CutPrefix(endpoint, "http://"); ok {
		endpoint = trimmed
		plain = true
	} else if trimmed, ok := strings.CutPrefix(endpoint, "https://"); ok {
		endpoint = trimmed
	}
	if idx := strings.Index(endpoint, "/"); idx != -1 {
		endpoint = endpoint[:idx]
	}
	return endpoint, plain
}

// createResource creates an OpenTelemetry resource with service information.
func createResource(serviceName, serviceVersion string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)
}
