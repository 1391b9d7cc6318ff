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
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

// trail records the order in which middleware and handlers run.
type trail struct {
	mu    sync.Mutex
	steps []string
}

func (tr *trail) add(step string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.steps = append(tr.steps, step)
}

func (tr *trail) String() string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return strings.Join(tr.steps, ",")
}

func (tr *trail) middleware(name string) route.Middleware {
	return route.MiddlewareFunc(func(req *message.Request, next route.Handler) (*message.Response, error) {
		tr.add(name)
		return next.Handle(req)
	})
}

func (tr *trail) handler(name string) route.Handler {
	return route.HandlerFunc(func(*message.Request) (*message.Response, error) {
		tr.add(name)
		return message.Text(http.StatusOK, name), nil
	})
}

func okHandler(body string) route.Handler {
	return route.HandlerFunc(func(*message.Request) (*message.Response, error) {
		return message.Text(http.StatusOK, body), nil
	})
}

func get(path string) *message.Request {
	return message.NewRequest(http.MethodGet, path, nil)
}

func TestNew(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)
	assert.NotNil(t, r.Root())
	assert.False(t, r.Frozen())
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "zero bloom filter", opts: []Option{WithBloomFilterSize(0)}, wantErr: ErrBloomFilterSizeZero},
		{name: "nil logger", opts: []Option{WithLogger(nil)}, wantErr: ErrNilOption},
		{name: "nil tracer provider", opts: []Option{WithTracerProvider(nil)}, wantErr: ErrNilOption},
		{name: "nil meter provider", opts: []Option{WithMeterProvider(nil)}, wantErr: ErrNilOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := New(tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, r)
			assert.Panics(t, func() { MustNew(tt.opts...) })
		})
	}
}

func TestCompileFreezesRouter(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.AddRoute(route.Get("/a", okHandler("a")))

	require.NoError(t, r.Compile())
	assert.True(t, r.Frozen())
	assert.True(t, r.Root().Sealed())

	// Compile is idempotent.
	require.NoError(t, r.Compile())

	assert.PanicsWithValue(t, ErrRouterFrozen, func() {
		r.AddRoute(route.Get("/b", okHandler("b")))
	})
	assert.PanicsWithValue(t, ErrRouterFrozen, func() {
		r.AddMiddleware(route.MiddlewareFunc(func(req *message.Request, next route.Handler) (*message.Response, error) {
			return next.Handle(req)
		}))
	})
	assert.PanicsWithValue(t, ErrRouterFrozen, func() {
		r.AddGroupFunc("/x", func(route.Collector) {})
	})
}

func TestMatchCompilesLazily(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.AddRoute(route.Get("/a", okHandler("a")))

	result := r.Match(get("/a"))
	assert.True(t, result.IsSuccess())
	assert.True(t, r.Frozen())
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()

		r := MustNew()
		r.AddRoute(route.Get("/a", okHandler("a"), route.WithName("page")))
		r.AddGroupFunc("/admin", func(c route.Collector) {
			c.AddRoute(route.Get("/b", okHandler("b"), route.WithName("page")))
		})

		err := r.Compile()
		require.ErrorIs(t, err, ErrDuplicateRouteName)

		var ce *ConfigurationError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "/admin/b", ce.Pattern)
		assert.Equal(t, "page", ce.Name)
		assert.False(t, r.Frozen())
	})

	t.Run("conflicting patterns", func(t *testing.T) {
		t.Parallel()

		r := MustNew()
		r.AddRoute(route.Get("/users/{id}", okHandler("a")))
		r.AddRoute(route.Get("/users/{name}", okHandler("b")))

		err := r.Compile()
		require.Error(t, err)

		var ce *ConfigurationError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "/users/{name}", ce.Pattern)
	})

	t.Run("same pattern different methods", func(t *testing.T) {
		t.Parallel()

		r := MustNew()
		r.AddRoute(route.Get("/users", okHandler("list")))
		r.AddRoute(route.Post("/users", okHandler("create")))

		require.NoError(t, r.Compile())
	})

	t.Run("error is sticky", func(t *testing.T) {
		t.Parallel()

		r := MustNew()
		r.AddRoute(route.Get("/a", okHandler("a"), route.WithName("x")))
		r.AddRoute(route.Get("/b", okHandler("b"), route.WithName("x")))

		first := r.Compile()
		require.Error(t, first)
		assert.Equal(t, first, r.Compile())
		assert.Panics(t, r.MustCompile)

		result := r.Match(get("/a"))
		assert.False(t, result.IsSuccess())
		assert.False(t, result.IsMethodFailure())
	})
}

func TestConfigurationErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	named := &ConfigurationError{Method: "GET", Pattern: "/a", Name: "home", Err: cause}
	assert.Equal(t, "router: route GET /a (home): boom", named.Error())
	assert.ErrorIs(t, named, cause)

	unnamed := &ConfigurationError{Method: "POST", Pattern: "/b", Err: cause}
	assert.Equal(t, "router: route POST /b: boom", unnamed.Error())
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	tr := &trail{}
	r := MustNew()
	r.AddMiddleware(tr.middleware("root"))
	r.AddGroupFunc("/api", func(c route.Collector) {
		c.AddMiddleware(tr.middleware("api"))
		c.AddRoute(route.Post("/users", okHandler("create"), route.WithName("users.create")))
		c.AddRoute(route.Get("/users/{id}", nil, route.WithMiddleware(tr.middleware("route"))))
	})
	r.AddRoute(route.Get("/", okHandler("home"), route.WithName("home")))

	routes := r.Routes()
	require.Len(t, routes, 3)

	assert.Equal(t, RouteInfo{Method: "GET", Pattern: "/", Name: "home", Middleware: 1, HasHandler: true}, routes[0])
	assert.Equal(t, RouteInfo{Method: "GET", Pattern: "/api/users/{id}", Middleware: 3, HasHandler: false}, routes[1])
	assert.Equal(t, RouteInfo{Method: "POST", Pattern: "/api/users", Name: "users.create", Middleware: 2, HasHandler: true}, routes[2])
}

func TestCollect(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.Collect(func(c route.Collector) {
		c.AddRoute(route.Get("/a", okHandler("a")))
		c.AddGroupItems("/b", route.Get("/c", okHandler("c")))
	})

	assert.True(t, r.Match(get("/a")).IsSuccess())
	assert.True(t, r.Match(get("/b/c")).IsSuccess())
}

func TestOptimalBloomFilterSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(defaultBloomFilterSize), optimalBloomFilterSize(0))
	assert.Equal(t, uint64(100), optimalBloomFilterSize(3))
	assert.Equal(t, uint64(5000), optimalBloomFilterSize(500))
	assert.Equal(t, uint64(1000000), optimalBloomFilterSize(500000))
}
