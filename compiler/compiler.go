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


package compiler

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// AnyMethod is the method wildcard. Routes registered with it match every
// method that has no route of its own.
const AnyMethod = "*"

var (
	// ErrDuplicateRoute indicates that two routes match the same method and paths.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrCompilerFrozen indicates that routes were added after Freeze.
	ErrCompilerFrozen = errors.New("route compiler is frozen")
)

// Param is one extracted path parameter.
type Param struct {
	Key   string
	Value string
}

// Match is the outcome of a lookup. Found is false when no route matched;
// Route and Params are then empty.
type Match struct {
	Found  bool
	Route  *CompiledRoute
	Params []Param
}

// ParamMap returns the extracted parameters as a map.
func (m Match) ParamMap() map[string]string {
	out := make(map[string]string, len(m.Params))
	for _, p := range m.Params {
		out[p.Key] = p.Value
	}
	return out
}

// CompiledRoute is a route pattern pre-parsed for matching, together with an
// opaque payload supplied by the caller (the router stores its dispatch entry
// there).
type CompiledRoute struct {
	method  string
	pattern *Pattern
	payload any
	hash    uint64
}

// CompileRoute compiles a flattened route pattern for the given method.
func CompileRoute(method, pattern string, payload any) (*CompiledRoute, error) {
	p, err := ParsePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &CompiledRoute{
		method:  method,
		pattern: p,
		payload: payload,
		hash:    hashKey(method, pattern),
	}, nil
}

// Method returns the HTTP method, or AnyMethod.
func (r *CompiledRoute) Method() string {
	return r.method
}

// Pattern returns the route pattern as written.
func (r *CompiledRoute) Pattern() string {
	return r.pattern.raw
}

// Params returns the declared parameter names.
func (r *CompiledRoute) Params() []string {
	return r.pattern.Params()
}

// Payload returns the caller supplied payload.
func (r *CompiledRoute) Payload() any {
	return r.payload
}

// RouteCompiler holds compiled routes and resolves method and path to a route.
//
// Static routes live in a hash table guarded by a bloom filter for negative
// lookups. Dynamic routes are kept sorted by specificity: more literal
// segments first, catch-all routes last, registration order as tie-break.
//
// Routes are added during setup. After Freeze the compiler is read-only and
// lookups skip locking entirely.
type RouteCompiler struct {
	staticRoutes  map[uint64]*CompiledRoute
	staticBloom   *BloomFilter
	dynamicRoutes []*CompiledRoute
	shapes        map[string]string // method+shape -> pattern, for duplicate detection

	mu     sync.RWMutex
	frozen atomic.Bool
}

// NewRouteCompiler creates an empty compiler. bloomSize and numHashFuncs size
// the static route bloom filter.
func NewRouteCompiler(bloomSize uint64, numHashFuncs int) *RouteCompiler {
	return &RouteCompiler{
		staticRoutes:  make(map[uint64]*CompiledRoute, 64),
		staticBloom:   NewBloomFilter(bloomSize, numHashFuncs),
		dynamicRoutes: make([]*CompiledRoute, 0, 32),
		shapes:        make(map[string]string, 64),
	}
}

// AddRoute adds a compiled route. Two routes for the same method whose
// patterns match the same paths are rejected with ErrDuplicateRoute.
func (rc *RouteCompiler) AddRoute(route *CompiledRoute) error {
	if rc.frozen.Load() {
		return ErrCompilerFrozen
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	key := route.method + " " + route.pattern.shape()
	if existing, dup := rc.shapes[key]; dup {
		return fmt.Errorf("%w: %s %s conflicts with %s", ErrDuplicateRoute, route.method, route.pattern.raw, existing)
	}
	rc.shapes[key] = route.pattern.raw

	if route.pattern.IsStatic() {
		if _, collision := rc.staticRoutes[route.hash]; !collision {
			rc.staticRoutes[route.hash] = route
			rc.staticBloom.Add(route.hash)
			return nil
		}
		// Hash collision between different keys: keep it matchable through
		// the dynamic list instead.
	}

	rc.dynamicRoutes = append(rc.dynamicRoutes, route)
	rc.sortRoutesBySpecificity()

	return nil
}

// sortRoutesBySpecificity orders dynamic routes so the most specific match wins.
func (rc *RouteCompiler) sortRoutesBySpecificity() {
	slices.SortStableFunc(rc.dynamicRoutes, func(a, b *CompiledRoute) int {
		if ac, bc := a.pattern.hasCatchAll(), b.pattern.hasCatchAll(); ac != bc {
			if ac {
				return 1
			}
			return -1
		}
		return b.pattern.staticCount() - a.pattern.staticCount()
	})
}

// Freeze makes the compiler read-only.
func (rc *RouteCompiler) Freeze() {
	rc.frozen.Store(true)
}

// Len returns the number of compiled routes.
func (rc *RouteCompiler) Len() int {
	if !rc.frozen.Load() {
		rc.mu.RLock()
		defer rc.mu.RUnlock()
	}
	return len(rc.staticRoutes) + len(rc.dynamicRoutes)
}

// Match resolves method and path.
//
// Candidates are tried per method in this order: the request method, GET for
// HEAD requests, then AnyMethod. Within a method static routes win over
// dynamic ones.
func (rc *RouteCompiler) Match(method, path string) Match {
	if !rc.frozen.Load() {
		rc.mu.RLock()
		defer rc.mu.RUnlock()
	}

	for _, m := range candidateMethods(method) {
		if route := rc.lookupStatic(m, path); route != nil {
			return Match{Found: true, Route: route}
		}
		if route, params := rc.matchDynamic(m, path); route != nil {
			return Match{Found: true, Route: route, Params: params}
		}
	}

	return Match{}
}

// AllowedMethods returns the distinct methods of all routes whose pattern
// matches path, sorted.
func (rc *RouteCompiler) AllowedMethods(path string) []string {
	if !rc.frozen.Load() {
		rc.mu.RLock()
		defer rc.mu.RUnlock()
	}

	var methods []string
	add := func(m string) {
		if !slices.Contains(methods, m) {
			methods = append(methods, m)
		}
	}

	for _, route := range rc.staticRoutes {
		if route.pattern.raw == path {
			add(route.method)
		}
	}
	for _, route := range rc.dynamicRoutes {
		if _, ok := route.pattern.match(path, nil); ok {
			add(route.method)
		}
	}

	slices.Sort(methods)
	return methods
}

func candidateMethods(method string) []string {
	if method == "HEAD" {
		return []string{method, "GET", AnyMethod}
	}
	return []string{method, AnyMethod}
}

func (rc *RouteCompiler) matchDynamic(method, path string) (*CompiledRoute, []Param) {
	for _, route := range rc.dynamicRoutes {
		if route.method != method {
			continue
		}
		if params, ok := route.pattern.match(path, nil); ok {
			return route, params
		}
	}
	return nil, nil
}
