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


package problem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahau/router"
	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

type codedError struct{}

func (codedError) Error() string   { return "out of stock" }
func (codedError) Code() string    { return "out-of-stock" }
func (codedError) HTTPStatus() int { return http.StatusConflict }

func fixedID() string { return "err-1" }

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		err  error
		want map[string]any
	}{
		{
			name: "status error",
			err:  WithStatus(errors.New("user 7 not found"), http.StatusNotFound),
			want: map[string]any{
				"type": "about:blank", "title": "Not Found", "status": float64(404),
				"detail": "user 7 not found", "instance": "/users/7", "error_id": "err-1",
			},
		},
		{
			name: "coded error with base url",
			opts: []Option{WithBaseURL("https://example.com/problems")},
			err:  fmt.Errorf("ordering: %w", codedError{}),
			want: map[string]any{
				"type": "https://example.com/problems/out-of-stock", "title": "Conflict", "status": float64(409),
				"detail": "ordering: out of stock", "instance": "/users/7", "error_id": "err-1", "code": "out-of-stock",
			},
		},
		{
			name: "internal error hides detail",
			err:  errors.New("db password rejected"),
			want: map[string]any{
				"type": "about:blank", "title": "Internal Server Error", "status": float64(500),
				"instance": "/users/7", "error_id": "err-1",
			},
		},
		{
			name: "internal details enabled",
			opts: []Option{WithInternalDetails(true)},
			err:  errors.New("boom"),
			want: map[string]any{
				"type": "about:blank", "title": "Internal Server Error", "status": float64(500),
				"detail": "boom", "instance": "/users/7", "error_id": "err-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := Handler(append([]Option{WithErrorID(fixedID)}, tt.opts...)...)
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/users/7", nil), tt.err)

			assert.Equal(t, int(tt.want["status"].(float64)), w.Code)
			assert.Equal(t, ContentType, w.Header().Get("Content-Type"))
			assert.Equal(t, tt.want, decode(t, w))
		})
	}
}

func TestHandlerGeneratesErrorIDs(t *testing.T) {
	t.Parallel()

	h := Handler()
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))

	id, ok := decode(t, w)["error_id"].(string)
	require.True(t, ok)
	assert.Len(t, id, 36)
}

func TestExtensionsCannotOverrideMembers(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Detail{
		Type:       "about:blank",
		Title:      "Bad Request",
		Status:     400,
		Extensions: map[string]any{"status": 200, "hint": "retry"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"about:blank","title":"Bad Request","status":400,"hint":"retry"}`, string(data))
}

func TestHandlerLogsServerErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := Handler(WithLogger(logger), WithErrorID(fixedID))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a", nil), WithStatus(errors.New("gone"), http.StatusGone))
	assert.Empty(t, buf.String())

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a", nil), errors.New("boom"))
	assert.Contains(t, buf.String(), "request failed")
	assert.Contains(t, buf.String(), "error_id=err-1")
}

func TestRouterErrorHandler(t *testing.T) {
	t.Parallel()

	r := router.MustNew(router.WithErrorHandler(Handler(WithErrorID(fixedID))))
	r.AddRoute(route.Get("/users/{id}", route.HandlerFunc(func(req *message.Request) (*message.Response, error) {
		id, _ := req.Attribute("id")
		return nil, WithStatus(fmt.Errorf("user %v not found", id), http.StatusNotFound)
	})))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/9", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user 9 not found", decode(t, w)["detail"])
}
