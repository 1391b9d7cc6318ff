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


package message

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestWithAttributeDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := NewRequest(http.MethodGet, "/users/1", nil)
	withA := base.WithAttribute("a", 1)
	withB := withA.WithAttribute("b", 2)

	_, ok := base.Attribute("a")
	assert.False(t, ok, "base request must stay untouched")
	assert.Equal(t, []string{"a"}, withA.AttributeKeys())
	assert.Equal(t, []string{"a", "b"}, withB.AttributeKeys())
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, withB.Attributes())
}

func TestRequestAttributeReplaceKeepsPosition(t *testing.T) {
	t.Parallel()

	req := NewRequest(http.MethodGet, "/", nil).
		WithAttribute("first", "x").
		WithAttribute("second", "y").
		WithAttribute("first", "z")

	assert.Equal(t, []string{"first", "second"}, req.AttributeKeys())
	v, ok := req.Attribute("first")
	require.True(t, ok)
	assert.Equal(t, "z", v)
}

func TestRequestAccessors(t *testing.T) {
	t.Parallel()

	req := NewRequest(http.MethodPost, "/items?sort=asc", []byte("payload")).
		WithHeader("X-Test", "1")

	assert.Equal(t, http.MethodPost, req.Method())
	assert.Equal(t, "/items", req.Path())
	assert.Equal(t, "asc", req.URL().Query().Get("sort"))
	assert.Equal(t, "1", req.HeaderLine("X-Test"))
	assert.Equal(t, []byte("payload"), req.Body())
	assert.NotNil(t, req.Context())

	h := req.Header()
	h.Set("X-Test", "mutated")
	assert.Equal(t, "1", req.HeaderLine("X-Test"), "Header must return a copy")
}

func TestRequestWithContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	req := NewRequest(http.MethodGet, "/", nil)
	req2 := req.WithContext(ctx)

	assert.Equal(t, "v", req2.Context().Value(key{}))
	assert.Nil(t, req.Context().Value(key{}))
	assert.Panics(t, func() {
		//nolint:staticcheck // nil context is the case under test
		req.WithContext(nil)
	})
}

func TestNewRequestPanicsOnInvalidTarget(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewRequest(http.MethodGet, "not a uri", nil) })
}

func TestFromHTTPKeepsBodyReadable(t *testing.T) {
	t.Parallel()

	hr := httptest.NewRequest(http.MethodPut, "/docs/7?v=2", strings.NewReader("hello"))
	hr.Header.Set("Content-Type", "text/plain")

	req, err := FromHTTP(hr)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, req.Method())
	assert.Equal(t, "/docs/7", req.Path())
	assert.Equal(t, "text/plain", req.HeaderLine("Content-Type"))
	assert.Equal(t, []byte("hello"), req.Body())

	rest, err := io.ReadAll(hr.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(rest))
}

func TestResponseReasonPhrase(t *testing.T) {
	t.Parallel()

	resp := NewResponse(http.StatusForbidden)
	assert.Equal(t, "Forbidden", resp.ReasonPhrase())

	custom := resp.WithStatus(http.StatusOK, "middleware1")
	assert.Equal(t, http.StatusOK, custom.StatusCode())
	assert.Equal(t, "middleware1", custom.ReasonPhrase())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode(), "receiver must stay untouched")
}

func TestResponseSend(t *testing.T) {
	t.Parallel()

	resp := Text(http.StatusCreated, "created").
		WithHeader("X-One", "1").
		WithAddedHeader("X-Many", "a").
		WithAddedHeader("X-Many", "b")

	w := httptest.NewRecorder()
	require.NoError(t, resp.Send(w))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "created", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-One"))
	assert.Equal(t, []string{"a", "b"}, w.Header().Values("X-Many"))
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestResponseSendDefaultsToOK(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	require.NoError(t, (&Response{}).Send(w))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBodiesAreCopied(t *testing.T) {
	t.Parallel()

	src := []byte("hello")
	req := NewRequest(http.MethodPost, "/", nil).WithBody(src)
	resp := NewResponse(http.StatusOK).WithBody(src)
	src[0] = 'j'

	got := req.Body()
	got[0] = 'y'
	assert.Equal(t, "hello", string(req.Body()))
	assert.Equal(t, 5, req.BodyLen())

	got = resp.Body()
	got[0] = 'y'
	assert.Equal(t, "hello", string(resp.Body()))
	assert.Equal(t, 5, resp.BodyLen())
}
