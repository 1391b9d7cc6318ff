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


// Package route defines the registration-time model of the router: routes,
// the group tree that organizes them, and the Handler and Middleware
// capabilities they carry.
//
// Routes are created through per-method factories and are immutable:
//
//	list := route.Get("/", listPosts, route.WithName("post.list"))
//	view := route.Get("/{id:[0-9]+}", viewPost)
//
// Groups can be built imperatively, through a callback receiving a
// Collector, or declaratively from a list of items. The three forms below
// produce the same tree:
//
//	g := route.NewGroup("/post").AddRoute(list).AddRoute(view)
//
//	g := route.NewGroupFunc("/post", func(c route.Collector) {
//	    c.AddRoute(list).AddRoute(view)
//	})
//
//	g := route.NewGroup("/post", list, view)
//
// # Middleware order
//
// Middleware of nested groups accumulates outer group first. Within a single
// group (and a single route) the order is last-in first-out:
//
//	g.AddMiddleware(m1).AddMiddleware(m2)
//	g.Middlewares() // [m2, m1]; m2 runs before m1
package route
