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


package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jahau/router/compiler"
	"github.com/jahau/router/route"
)

// table is the compiled, immutable routing table.
type table struct {
	compiler *compiler.RouteCompiler
	entries  []*entry
	named    map[string]*entry
}

// entry is one route flattened out of the group tree.
type entry struct {
	route   *route.Route
	method  string
	pattern *compiler.Pattern // full pattern including group prefixes

	// chain is the complete middleware execution order: each ancestor
	// group's stack from the outermost group inward, then the route's own.
	chain []route.Middleware

	// pipeline is chain folded around the route handler. It is nil for
	// routes without a handler, whose pipelines end in the fallback.
	pipeline route.Handler
}

// Compile flattens the group tree into a routing table, seals the tree and
// freezes the router. It is called implicitly by the first Match.
//
// Compile reports a *ConfigurationError for invalid patterns, duplicate
// route names and conflicting routes. The outcome is sticky: once Compile
// has succeeded or failed, later calls return the same result.
func (r *Router) Compile() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.table.Load() != nil {
		return nil
	}
	if r.compileErr != nil {
		return r.compileErr
	}

	t, err := r.buildTable()
	if err != nil {
		r.compileErr = err
		r.logger.Error("route table compilation failed", "error", err)
		return err
	}

	r.root.Seal()
	t.compiler.Freeze()
	r.table.Store(t)

	r.logger.Info("route table compiled",
		"routes", len(t.entries),
		"named", len(t.named),
	)

	return nil
}

// compiled returns the routing table, compiling it on first use.
func (r *Router) compiled() (*table, error) {
	if t := r.table.Load(); t != nil {
		return t, nil
	}
	if err := r.Compile(); err != nil {
		return nil, err
	}
	return r.table.Load(), nil
}

// MustCompile is like Compile but panics on error.
func (r *Router) MustCompile() {
	if err := r.Compile(); err != nil {
		panic(fmt.Sprintf("router.MustCompile: %v", err))
	}
}

func (r *Router) buildTable() (*table, error) {
	var entries []*entry
	named := make(map[string]*entry)

	err := r.root.Walk(func(chain []*route.Group, rt *route.Route) error {
		e, err := flatten(chain, rt)
		if err != nil {
			return err
		}

		if name := rt.Name(); name != "" {
			if prev, dup := named[name]; dup {
				return &ConfigurationError{
					Method:  e.method,
					Pattern: e.pattern.String(),
					Name:    name,
					Err:     fmt.Errorf("%w: also used by %s %s", ErrDuplicateRouteName, prev.method, prev.pattern),
				}
			}
			named[name] = e
		}

		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rc := compiler.NewRouteCompiler(r.bloomSizeFor(entries), r.bloomHashFunctions)
	for _, e := range entries {
		cr, err := compiler.CompileRoute(e.method, e.pattern.String(), e)
		if err != nil {
			return nil, configError(e, err)
		}
		if err := rc.AddRoute(cr); err != nil {
			return nil, configError(e, err)
		}
		r.registered(e)
	}

	return &table{compiler: rc, entries: entries, named: named}, nil
}

// flatten resolves a route's full pattern and middleware chain from the
// groups enclosing it, outermost first.
func flatten(chain []*route.Group, rt *route.Route) (*entry, error) {
	var prefix strings.Builder
	var mws []route.Middleware
	for _, g := range chain {
		prefix.WriteString(g.Prefix())
		mws = append(mws, g.Middlewares()...)
	}
	mws = append(mws, rt.Middlewares()...)

	full := prefix.String() + rt.Pattern()
	e := &entry{
		route:  rt,
		method: rt.Method().String(),
		chain:  mws,
	}

	p, err := compiler.ParsePattern(full)
	if err != nil {
		return nil, &ConfigurationError{Method: e.method, Pattern: full, Name: rt.Name(), Err: err}
	}
	e.pattern = p

	if h := rt.Handler(); h != nil {
		e.pipeline = compose(mws, h)
	}

	return e, nil
}

func configError(e *entry, err error) error {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return err
	}
	return &ConfigurationError{
		Method:  e.method,
		Pattern: e.pattern.String(),
		Name:    e.route.Name(),
		Err:     err,
	}
}

// registered logs a compiled route and emits its diagnostics.
func (r *Router) registered(e *entry) {
	r.logger.Debug("route registered",
		"method", e.method,
		"pattern", e.pattern.String(),
		"name", e.route.Name(),
		"middleware", len(e.chain),
	)

	r.emit(DiagRouteRegistered, "route registered", map[string]any{
		"method":  e.method,
		"pattern": e.pattern.String(),
		"name":    e.route.Name(),
	})

	if n := len(e.pattern.Params()); n > maxParamsHint {
		r.emit(DiagHighParamCount, "route has many parameters", map[string]any{
			"method":  e.method,
			"pattern": e.pattern.String(),
			"params":  n,
		})
	}

	if e.pipeline == nil {
		r.emit(DiagHandlerlessRoute, "route has no handler; requests end in the fallback handler", map[string]any{
			"method":  e.method,
			"pattern": e.pattern.String(),
		})
	}
}

// bloomSizeFor sizes the static route bloom filter. An explicitly configured
// size is used as is; the default is replaced by roughly 10 bits per static
// route for a false positive rate near 1%.
func (r *Router) bloomSizeFor(entries []*entry) uint64 {
	if r.bloomFilterSize != defaultBloomFilterSize {
		return r.bloomFilterSize
	}

	static := 0
	for _, e := range entries {
		if e.pattern.IsStatic() {
			static++
		}
	}

	return optimalBloomFilterSize(static)
}

// optimalBloomFilterSize returns 10 bits per route, clamped to [100, 1000000].
func optimalBloomFilterSize(routeCount int) uint64 {
	if routeCount <= 0 {
		return defaultBloomFilterSize
	}
	size := uint64(routeCount * 10)
	if size < 100 {
		return 100
	}
	if size > 1000000 {
		return 1000000
	}
	return size
}
