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


package requestid

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

// echo answers with the request ID it sees.
var echo = route.HandlerFunc(func(req *message.Request) (*message.Response, error) {
	return message.Text(http.StatusOK, Get(req)), nil
})

func TestGeneratesUUIDv7(t *testing.T) {
	t.Parallel()

	resp, err := New().Process(message.NewRequest(http.MethodGet, "/", nil), echo)
	require.NoError(t, err)

	id := string(resp.Body())
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Equal(t, id, resp.HeaderLine(DefaultHeader))
}

func TestGeneratesULID(t *testing.T) {
	t.Parallel()

	resp, err := New(WithULID()).Process(message.NewRequest(http.MethodGet, "/", nil), echo)
	require.NoError(t, err)

	id := string(resp.Body())
	assert.Len(t, id, 26)
	_, err = ulid.Parse(id)
	assert.NoError(t, err)
}

func TestClientID(t *testing.T) {
	t.Parallel()

	req := message.NewRequest(http.MethodGet, "/", nil).WithHeader(DefaultHeader, "client-123")

	t.Run("kept by default", func(t *testing.T) {
		t.Parallel()

		resp, err := New().Process(req, echo)
		require.NoError(t, err)
		assert.Equal(t, "client-123", string(resp.Body()))
		assert.Equal(t, "client-123", resp.HeaderLine(DefaultHeader))
	})

	t.Run("replaced when disallowed", func(t *testing.T) {
		t.Parallel()

		mw := New(WithAllowClientID(false), WithGenerator(func() string { return "server-1" }))
		resp, err := mw.Process(req, echo)
		require.NoError(t, err)
		assert.Equal(t, "server-1", string(resp.Body()))
	})
}

func TestCustomHeader(t *testing.T) {
	t.Parallel()

	mw := New(WithHeader("X-Correlation-ID"), WithGenerator(func() string { return "corr" }))
	next := route.HandlerFunc(func(req *message.Request) (*message.Response, error) {
		return message.Text(http.StatusOK, req.HeaderLine("X-Correlation-ID")), nil
	})

	resp, err := mw.Process(message.NewRequest(http.MethodGet, "/", nil), next)
	require.NoError(t, err)
	assert.Equal(t, "corr", string(resp.Body()))
	assert.Equal(t, "corr", resp.HeaderLine("X-Correlation-ID"))
	assert.Empty(t, resp.HeaderLine(DefaultHeader))
}

func TestGetWithoutMiddleware(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Get(message.NewRequest(http.MethodGet, "/", nil)))
}

func TestUniqueIDs(t *testing.T) {
	t.Parallel()

	mw := New()
	seen := make(map[string]struct{})
	for range 100 {
		resp, err := mw.Process(message.NewRequest(http.MethodGet, "/", nil), echo)
		require.NoError(t, err)
		seen[string(resp.Body())] = struct{}{}
	}
	assert.Len(t, seen, 100)
}
