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


// Command routerdemo serves a small user directory through the router,
// with the full middleware stack, tracing and Prometheus metrics.
//
// Usage:
//
//	routerdemo [-config routerdemo.toml]
//
// Settings can also be given as ROUTERDEMO_* environment variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jahau/router/internal/config"
	"github.com/jahau/router/logging"
	"github.com/jahau/router/metrics"
	"github.com/jahau/router/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "routerdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("routerdemo", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a TOML or YAML settings file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.Load(ctx, *configPath)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Format:         logging.HandlerType(settings.Log.Format),
		Level:          settings.Log.Level,
		ServiceName:    settings.Service.Name,
		ServiceVersion: settings.Service.Version,
		Environment:    settings.Service.Environment,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	slog.SetDefault(logger)

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		Provider:       tracing.Provider(settings.Tracing.Provider),
		Endpoint:       settings.Tracing.Endpoint,
		Insecure:       settings.Tracing.Insecure,
		SampleRate:     settings.Tracing.SampleRate,
		ServiceName:    settings.Service.Name,
		ServiceVersion: settings.Service.Version,
	})
	if err != nil {
		return fmt.Errorf("creating tracer provider: %w", err)
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	m, err := metrics.New(ctx, metrics.Config{
		Provider:       metrics.Provider(settings.Metrics.Provider),
		Endpoint:       settings.Metrics.Endpoint,
		RuntimeMetrics: settings.Metrics.RuntimeMetrics,
		ServiceName:    settings.Service.Name,
		ServiceVersion: settings.Service.Version,
	})
	if err != nil {
		return fmt.Errorf("creating meter provider: %w", err)
	}
	otel.SetMeterProvider(m.MeterProvider())

	handler, err := newHandler(settings, logger, tp, m)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         settings.Server.Addr,
		Handler:      handler,
		ReadTimeout:  settings.Server.ReadTimeout,
		WriteTimeout: settings.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	case <-ctx.Done():
		logger.Info("server shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.Server.ShutdownTimeout)
	defer cancel()

	return errors.Join(
		err,
		srv.Shutdown(shutdownCtx),
		tp.Shutdown(shutdownCtx),
		m.Shutdown(shutdownCtx),
	)
}
