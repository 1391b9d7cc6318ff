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
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahau/router"
	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "default", cfg: Config{}},
		{name: "prometheus with runtime metrics", cfg: Config{Provider: PrometheusProvider, RuntimeMetrics: true}},
		{name: "stdout", cfg: Config{Provider: StdoutProvider, Output: io.Discard}},
		{name: "otlp", cfg: Config{Provider: OTLPProvider, Endpoint: "http://localhost:4318"}},
		{name: "unknown", cfg: Config{Provider: "statsd"}, wantErr: ErrUnsupportedProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := New(context.Background(), tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m.MeterProvider())
			assert.NotNil(t, m.Handler())

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			_ = m.Shutdown(ctx)
		})
	}
}

func TestPrometheusHandlerExposesDispatchMetrics(t *testing.T) {
	t.Parallel()

	m, err := New(context.Background(), Config{ServiceName: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })

	r := router.MustNew(router.WithMeterProvider(m.MeterProvider()))
	r.AddRoute(route.Get("/users/{id}", route.HandlerFunc(func(*message.Request) (*message.Response, error) {
		return message.Text(http.StatusOK, "ok"), nil
	})))

	for _, path := range []string{"/users/1", "/users/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "router_dispatch_count")
	assert.Contains(t, body, `outcome="matched"`)
	assert.Contains(t, body, `outcome="not_found"`)
	assert.Contains(t, body, `route="/users/{id}"`)
	assert.Contains(t, body, "router_dispatch_duration_seconds")
}

func TestPushProvidersHaveNoScrapeHandler(t *testing.T) {
	t.Parallel()

	m, err := New(context.Background(), Config{Provider: StdoutProvider, Output: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStdoutProviderWritesOnShutdown(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	m, err := New(context.Background(), Config{Provider: StdoutProvider, Output: &out, ExportInterval: time.Hour})
	require.NoError(t, err)

	counter, err := m.MeterProvider().Meter("test").Int64Counter("test.counter")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Contains(t, out.String(), "test.counter")
}
