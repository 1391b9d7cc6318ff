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


// Package tracing builds OpenTelemetry tracer providers for services that
// use the router.
//
// The router itself only needs a trace.TracerProvider; this package wires
// the exporters:
//
//	tp, err := tracing.NewProvider(ctx, tracing.Config{
//	    Provider:    tracing.OTLPProvider,
//	    Endpoint:    "collector:4317",
//	    Insecure:    true,
//	    ServiceName: "routerdemo",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tp.Shutdown(context.Background())
//
//	r := router.MustNew(router.WithTracerProvider(tp))
//
// # Providers
//
//   - NoopProvider: spans are created but never exported
//   - StdoutProvider: spans are printed as JSON (development)
//   - OTLPProvider: OTLP over gRPC
//   - OTLPHTTPProvider: OTLP over HTTP
package tracing
