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


// Package router composes routes and route groups into a routing table and
// dispatches requests through per-group middleware pipelines.
//
// Routes are declared with package route and collected into a tree of
// groups. Each group carries a path prefix and a middleware stack; groups
// can be built declaratively from a list of items or imperatively through a
// callback that receives a route.Collector.
//
// # Key Features
//
//   - Static and parameterized patterns, including {name:regex} constraints
//     and a trailing {name...} catch-all
//   - Nested groups with accumulated prefixes and middleware
//   - LIFO middleware ordering within each group, ancestors before descendants
//   - Short-circuiting middleware and a caller-supplied fallback handler
//   - Reverse routing by route name
//   - OpenTelemetry tracing and metrics, log/slog logging
//
// # Middleware Ordering
//
// Within a group the most recently added middleware runs first. For a route
// nested in groups G1 (outermost) through Gn, a request passes through G1's
// stack, then G2's, down to Gn's, then the route's own middleware, then the
// route handler:
//
//	api := route.NewGroup("/api")
//	api.AddMiddleware(auth)    // runs second
//	api.AddMiddleware(limiter) // runs first
//
// # Quick Start
//
//	r := router.MustNew(router.WithLogger(logger))
//	r.AddGroupFunc("/api", func(c route.Collector) {
//	    c.AddMiddleware(auth)
//	    c.AddRoute(route.Get("/users/{id:[0-9]+}", showUser, route.WithName("users.show")))
//	})
//	if err := r.Compile(); err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", r)
//
// # Dispatching Without net/http
//
// Match and Process can be driven directly with message values:
//
//	result := r.Match(message.NewRequest(http.MethodGet, "/api/users/7", nil))
//	resp, err := result.Process(req, notFound)
//
// A MatchingResult that is not a success runs only the fallback handler;
// no route or group middleware is invoked.
package router
