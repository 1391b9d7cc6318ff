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


package route

import (
	"fmt"
	"slices"

	"github.com/jahau/router/compiler"
)

// Route binds a method and path pattern to a handler.
//
// A Route is immutable: WithName and WithMiddleware return configured copies.
// It holds no reference to the group that owns it.
//
// The handler may be nil. Such a route still runs its group and route
// middleware; the pipeline then ends in the fallback handler given to
// MatchingResult.Process.
type Route struct {
	method      Method
	pattern     *compiler.Pattern
	handler     Handler
	name        string
	middlewares []Middleware // registration order
}

// Option configures a route at construction time.
type Option func(*Route) error

// WithName sets the route name used for reverse routing and introspection.
func WithName(name string) Option {
	return func(r *Route) error {
		if name == "" {
			return ErrEmptyName
		}
		r.name = name
		return nil
	}
}

// WithMiddleware adds route-scoped middleware. Like group middleware, the
// last one added runs first.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Route) error {
		for _, m := range mw {
			if m == nil {
				return fmt.Errorf("%w: nil middleware", ErrInvalidArgument)
			}
		}
		r.middlewares = append(r.middlewares, mw...)
		return nil
	}
}

// New creates a route. It fails with an error wrapping ErrInvalidArgument
// when the method is unknown, the pattern is empty or malformed, or an
// option is invalid.
func New(method, pattern string, handler Handler, opts ...Option) (*Route, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}

	p, err := compiler.ParsePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	r := &Route{
		method:  m,
		pattern: p,
		handler: handler,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MustNew is like New but panics on error. It is meant for route tables
// declared at startup.
func MustNew(method, pattern string, handler Handler, opts ...Option) *Route {
	r, err := New(method, pattern, handler, opts...)
	if err != nil {
		panic(fmt.Sprintf("route: %s %s: %v", method, pattern, err))
	}
	return r
}

// Get creates a GET route. It panics on an invalid pattern or option.
func Get(pattern string, handler Handler, opts ...Option) *Route {
	return MustNew(string(GET), pattern, handler, opts...)
}

// Post creates a POST route. It panics on an invalid pattern or option.
func Post(pattern string, handler Handler, opts ...Option) *Route {
	return MustNew(string(POST), pattern, handler, opts...)
}

// Put creates a PUT route. It panics on an invalid pattern or option.
func Put(pattern string, handler Handler, opts ...Option) *Route {
	return MustNew(string(PUT), pattern, handler, opts...)
}

// Patch creates a PATCH route. It panics on an invalid pattern or option.
func Patch(pattern string, handler Handler, opts ...Option) *Route {
	return MustNew(string(PATCH), pattern, handler, opts...)
}

// Delete creates a DELETE route. It panics on an invalid pattern or option.
func Delete(pattern string, handler Handler, opts ...Option) *Route {
	return MustNew(string(DELETE), pattern, handler, opts...)
}

// Head creates a HEAD route. It panics on an invalid pattern or option.
func Head(pattern string, handler Handler, opts ...Option) *Route {
	return MustNew(string(HEAD), pattern, handler, opts...)
}

// Options creates an OPTIONS route. It panics on an invalid pattern or option.
func Options(pattern string, handler Handler, opts ...Option) *Route {
	return MustNew(string(OPTIONS), pattern, handler, opts...)
}

// AnyMethod creates a route matching every method. It panics on an invalid
// pattern or option.
func AnyMethod(pattern string, handler Handler, opts ...Option) *Route {
	return MustNew(string(Any), pattern, handler, opts...)
}

func (r *Route) isItem() {}

func (r *Route) clone() *Route {
	nr := *r
	nr.middlewares = slices.Clone(r.middlewares)
	return &nr
}

// WithName returns a copy of the route carrying name.
func (r *Route) WithName(name string) (*Route, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	nr := r.clone()
	nr.name = name
	return nr, nil
}

// WithMiddleware returns a copy of the route with mw appended to its own
// middleware. It panics on a nil middleware.
func (r *Route) WithMiddleware(mw ...Middleware) *Route {
	nr := r.clone()
	if err := WithMiddleware(mw...)(nr); err != nil {
		panic("route: " + err.Error())
	}
	return nr
}

// Method returns the route method.
func (r *Route) Method() Method {
	return r.method
}

// Pattern returns the path pattern as given at construction.
func (r *Route) Pattern() string {
	return r.pattern.String()
}

// Params returns the parameter names declared by the pattern.
func (r *Route) Params() []string {
	return r.pattern.Params()
}

// Handler returns the route handler, possibly nil.
func (r *Route) Handler() Handler {
	return r.handler
}

// Name returns the route name, empty when unnamed.
func (r *Route) Name() string {
	return r.name
}

// Middlewares returns the route middleware in execution order, which is
// the reverse of the order they were added.
func (r *Route) Middlewares() []Middleware {
	return reversed(r.middlewares)
}

// String returns "METHOD pattern".
func (r *Route) String() string {
	return string(r.method) + " " + r.pattern.String()
}

func reversed(mws []Middleware) []Middleware {
	out := make([]Middleware, len(mws))
	for i, m := range mws {
		out[len(mws)-1-i] = m
	}
	return out
}
