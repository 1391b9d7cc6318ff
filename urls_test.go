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
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahau/router/route"
)

func newURLRouter() *Router {
	r := MustNew()
	r.AddRoute(route.Get("/", okHandler("home"), route.WithName("home")))
	r.AddGroupFunc("/api", func(c route.Collector) {
		c.AddRoute(route.Get("/users/{id:[0-9]+}", okHandler("user"), route.WithName("users.show")))
		c.AddRoute(route.Get("/files/{path...}", okHandler("file"), route.WithName("files")))
		c.AddRoute(route.Get("/search/{term}", okHandler("search"), route.WithName("search")))
	})
	return r
}

func TestURL(t *testing.T) {
	t.Parallel()

	r := newURLRouter()

	tests := []struct {
		name   string
		route  string
		params map[string]string
		query  url.Values
		want   string
	}{
		{name: "root", route: "home", want: "/"},
		{name: "parameter", route: "users.show", params: map[string]string{"id": "42"}, want: "/api/users/42"},
		{
			name:   "query",
			route:  "users.show",
			params: map[string]string{"id": "42"},
			query:  url.Values{"tab": {"posts"}},
			want:   "/api/users/42?tab=posts",
		},
		{name: "catch-all keeps slashes", route: "files", params: map[string]string{"path": "a/b c/d"}, want: "/api/files/a/b%20c/d"},
		{name: "escaped segment", route: "search", params: map[string]string{"term": "a/b"}, want: "/api/search/a%2Fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.URL(tt.route, tt.params, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestURLErrors(t *testing.T) {
	t.Parallel()

	r := newURLRouter()

	_, err := r.URL("missing", nil, nil)
	require.ErrorIs(t, err, ErrRouteNotFound)

	_, err = r.URL("users.show", nil, nil)
	require.ErrorIs(t, err, ErrMissingRouteParameter)

	_, err = r.URL("users.show", map[string]string{"id": "abc"}, nil)
	require.ErrorIs(t, err, ErrInvalidRouteParameter)

	assert.Panics(t, func() { r.MustURL("missing", nil, nil) })
	assert.Equal(t, "/api/users/7", r.MustURL("users.show", map[string]string{"id": "7"}, nil))
}

func TestURLRoundTrip(t *testing.T) {
	t.Parallel()

	r := newURLRouter()

	u, err := r.URL("users.show", map[string]string{"id": "9"}, nil)
	require.NoError(t, err)

	result := r.Match(get(u))
	require.True(t, result.IsSuccess())
	assert.Equal(t, "users.show", result.Route().Name())
	assert.Equal(t, map[string]string{"id": "9"}, result.Params())
}
