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


package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/jahau/router"
	"github.com/jahau/router/internal/config"
	"github.com/jahau/router/message"
	"github.com/jahau/router/metrics"
	"github.com/jahau/router/middleware"
	"github.com/jahau/router/middleware/accesslog"
	"github.com/jahau/router/middleware/basicauth"
	"github.com/jahau/router/middleware/bodylimit"
	"github.com/jahau/router/middleware/compression"
	"github.com/jahau/router/middleware/recovery"
	"github.com/jahau/router/middleware/requestid"
	"github.com/jahau/router/problem"
	"github.com/jahau/router/route"
)

// newHandler wires the routes and middleware. The metrics endpoint is served
// beside the router so that scrapes do not show up in dispatch metrics.
func newHandler(settings *config.Settings, logger *slog.Logger, tp trace.TracerProvider, m *metrics.Metrics) (http.Handler, error) {
	opts := []router.Option{
		router.WithLogger(logger),
		router.WithTracerProvider(tp),
		router.WithMeterProvider(m.MeterProvider()),
		router.WithErrorHandler(problem.Handler(problem.WithLogger(logger))),
		router.WithMaxBodySize(settings.Server.MaxBodySize),
	}
	if settings.Router.BloomFilterSize > 0 {
		opts = append(opts, router.WithBloomFilterSize(settings.Router.BloomFilterSize))
	}
	r, err := router.New(opts...)
	if err != nil {
		return nil, err
	}

	// Group middleware runs in reverse registration order: recovery first.
	r.AddMiddleware(compression.New())
	r.AddMiddleware(accesslog.New(accesslog.WithLogger(logger), accesslog.WithExcludePaths("/healthz")))
	r.AddMiddleware(requestid.New())
	r.AddMiddleware(recovery.New(recovery.WithLogger(logger)))

	users := newUserStore()

	r.AddRoute(route.Get("/healthz", route.HandlerFunc(func(*message.Request) (*message.Response, error) {
		return message.Text(http.StatusOK, "ok"), nil
	}), route.WithName("health")))

	r.AddGroup(route.NewGroup("/api",
		route.Get("/users", route.HandlerFunc(users.list), route.WithName("users.list")),
		route.Get("/users/{id:[0-9]+}", route.HandlerFunc(users.show), route.WithName("users.show")),
		route.Post("/users", route.HandlerFunc(users.create),
			route.WithName("users.create"),
			route.WithMiddleware(bodylimit.New(bodylimit.WithMaxSize(settings.Server.MaxBodySize))),
		),
	))

	r.AddGroupFunc("/admin", func(c route.Collector) {
		c.AddMiddleware(basicauth.New(
			basicauth.WithUsers(settings.Auth.Users),
			basicauth.WithRealm(settings.Auth.Realm),
		))
		if len(settings.Auth.Users) == 0 {
			c.AddMiddleware(middleware.Respond(func(*message.Request) (*message.Response, error) {
				return message.Text(http.StatusServiceUnavailable, "admin disabled"), nil
			}))
		}
		c.AddRoute(route.Get("/routes", route.HandlerFunc(func(*message.Request) (*message.Response, error) {
			return jsonResponse(http.StatusOK, r.Routes())
		}), route.WithName("admin.routes")))
	})

	if err = r.Compile(); err != nil {
		return nil, err
	}
	users.urls = r

	mux := http.NewServeMux()
	if path := settings.Metrics.Path; path != "" {
		mux.Handle(path, m.Handler())
	}
	mux.Handle("/", r)
	return mux, nil
}

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type userStore struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]user
	urls   *router.Router
}

func newUserStore() *userStore {
	return &userStore{nextID: 1, users: make(map[int]user)}
}

func (s *userStore) list(*message.Request) (*message.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]user, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b user) int { return a.ID - b.ID })
	return jsonResponse(http.StatusOK, out)
}

func (s *userStore) show(req *message.Request) (*message.Response, error) {
	raw, _ := req.Attribute("id")
	id, err := strconv.Atoi(fmt.Sprint(raw))
	if err != nil {
		return nil, problem.WithStatus(fmt.Errorf("invalid user id %v", raw), http.StatusBadRequest)
	}

	s.mu.RLock()
	u, ok := s.users[id]
	s.mu.RUnlock()
	if !ok {
		return nil, problem.WithStatus(fmt.Errorf("user %d not found", id), http.StatusNotFound)
	}
	return jsonResponse(http.StatusOK, u)
}

func (s *userStore) create(req *message.Request) (*message.Response, error) {
	var in struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(req.Body(), &in); err != nil || in.Name == "" {
		return nil, problem.WithStatus(errors.New("expected a JSON object with a name"), http.StatusBadRequest)
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	location, err := s.urls.URL("users.show", map[string]string{"id": strconv.Itoa(id)}, nil)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	u := user{ID: id, Name: in.Name, URL: location}
	s.users[id] = u
	s.mu.Unlock()

	resp, err := jsonResponse(http.StatusCreated, u)
	if err != nil {
		return nil, err
	}
	return resp.WithHeader("Location", location), nil
}

func jsonResponse(status int, v any) (*message.Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}
	return message.NewResponse(status).
		WithHeader("Content-Type", "application/json").
		WithBody(body), nil
}
