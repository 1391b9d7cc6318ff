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


// Package metrics builds OpenTelemetry meter providers for services that use
// the router, including a Prometheus scrape handler.
//
//	m, err := metrics.New(ctx, metrics.Config{
//	    Provider:    metrics.PrometheusProvider,
//	    ServiceName: "routerdemo",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Shutdown(context.Background())
//
//	r := router.MustNew(router.WithMeterProvider(m.MeterProvider()))
//	mux.Handle("/metrics", m.Handler())
//
// The Prometheus provider uses a private registry, so several instances can
// coexist in one process.
package metrics
