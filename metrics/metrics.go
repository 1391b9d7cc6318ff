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


package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Provider selects the metrics exporter.
type Provider string

const (
	// PrometheusProvider exposes metrics through Handler.
	PrometheusProvider Provider = "prometheus"
	// StdoutProvider prints metrics periodically as JSON.
	StdoutProvider Provider = "stdout"
	// OTLPProvider pushes metrics over OTLP/HTTP.
	OTLPProvider Provider = "otlp"
)

// defaultExportInterval applies to the push based providers.
const defaultExportInterval = 30 * time.Second

// ErrUnsupportedProvider indicates an unknown Provider value.
var ErrUnsupportedProvider = errors.New("unsupported metrics provider")

// Config configures a meter provider.
type Config struct {
	// Provider selects the exporter. Empty means PrometheusProvider.
	Provider Provider
	// Endpoint is the OTLP collector address, host:port or a URL.
	Endpoint string
	// ExportInterval is the push interval for stdout and OTLP. Zero means 30s.
	ExportInterval time.Duration
	// RuntimeMetrics adds Go runtime and process collectors to the
	// Prometheus registry.
	RuntimeMetrics bool
	// Output receives StdoutProvider metrics. Nil means os.Stdout.
	Output io.Writer

	ServiceName    string
	ServiceVersion string
}

// Metrics owns a meter provider and, for Prometheus, its scrape handler.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	handler  http.Handler
}

// New creates the configured meter provider.
func New(ctx context.Context, cfg Config) (*Metrics, error) {
	interval := cfg.ExportInterval
	if interval <= 0 {
		interval = defaultExportInterval
	}
	res := createResource(cfg.ServiceName, cfg.ServiceVersion)

	switch cfg.Provider {
	case PrometheusProvider, "":
		return newPrometheus(cfg, res)

	case StdoutProvider:
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(out))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		return newPeriodic(exporter, interval, res), nil

	case OTLPProvider:
		var opts []otlpmetrichttp.Option
		if cfg.Endpoint != "" {
			endpoint, plain := splitEndpoint(cfg.Endpoint)
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
			if plain {
				opts = append(opts, otlpmetrichttp.WithInsecure())
			}
		}
		exporter, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		return newPeriodic(exporter, interval, res), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}

func newPrometheus(cfg Config, res *resource.Resource) (*Metrics, error) {
	// Private registry so that several instances do not collide.
	registry := promclient.NewRegistry()
	if cfg.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	return &Metrics{
		provider: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(exporter),
			sdkmetric.WithResource(res),
		),
		handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, nil
}

func newPeriodic(exporter sdkmetric.Exporter, interval time.Duration, res *resource.Resource) *Metrics {
	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))
	return &Metrics{
		provider: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(reader),
			sdkmetric.WithResource(res),
		),
	}
}

// MeterProvider returns the meter provider to hand to the router.
func (m *Metrics) MeterProvider() metric.MeterProvider {
	return m.provider
}

// Handler returns the Prometheus scrape handler. For push based providers it
// answers 404.
func (m *Metrics) Handler() http.Handler {
	if m.handler == nil {
		return http.NotFoundHandler()
	}
	return m.handler
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
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

func createResource(serviceName, serviceVersion string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)
}
