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


// Package compiler turns flattened route patterns into lookup tables and
// resolves a request method and path to a route.
//
// # Patterns
//
// A pattern starts with '/' and is split into segments. A segment is either
// literal text or a placeholder occupying the whole segment:
//
//	/users/{id}            named parameter
//	/users/{id:[0-9]+}     parameter with a regular expression constraint
//	/files/{path...}       catch-all, last segment only, slashes included
//
// No normalization is applied: "/post" and "/post/" are different patterns.
//
// # Matching
//
// Static routes are stored in a hash table keyed by FNV-1a over method and
// path, with a bloom filter in front for negative lookups. Dynamic routes are
// scanned in specificity order (more literal segments first, catch-all last).
// For every request the compiler tries the request method, then GET for HEAD
// requests, then the AnyMethod wildcard.
//
// Example:
//
//	rc := compiler.NewRouteCompiler(1000, 3)
//	route, err := compiler.CompileRoute("GET", "/users/{id}", payload)
//	if err != nil {
//	    return err
//	}
//	if err := rc.AddRoute(route); err != nil {
//	    return err
//	}
//	rc.Freeze()
//
//	m := rc.Match("GET", "/users/42") // m.Found, m.Params == [{id 42}]
package compiler
