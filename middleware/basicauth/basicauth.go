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


package basicauth

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

// UserAttribute is the request attribute holding the authenticated user name.
const UserAttribute = "basicauth.user"

// Option configures the basic auth middleware.
type Option func(*config)

type config struct {
	users               map[string]string
	realm               string
	validator           func(username, password string) bool
	unauthorizedHandler func(req *message.Request) *message.Response
	skipPaths           map[string]struct{}
}

// WithUsers sets the allowed username/password pairs.
// Passwords are compared in constant time.
func WithUsers(users map[string]string) Option {
	return func(cfg *config) {
		cfg.users = users
	}
}

// WithRealm sets the authentication realm. Default: "Restricted"
func WithRealm(realm string) Option {
	return func(cfg *config) {
		cfg.realm = realm
	}
}

// WithValidator sets a custom credential check. When set it takes
// precedence over the static users map.
func WithValidator(validator func(username, password string) bool) Option {
	return func(cfg *config) {
		cfg.validator = validator
	}
}

// WithUnauthorizedHandler sets the response for rejected requests. The
// WWW-Authenticate header is added to whatever it returns.
func WithUnauthorizedHandler(handler func(req *message.Request) *message.Response) Option {
	return func(cfg *config) {
		cfg.unauthorizedHandler = handler
	}
}

// WithSkipPaths sets paths that bypass authentication.
func WithSkipPaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.skipPaths[p] = struct{}{}
		}
	}
}

// New returns basic authentication middleware.
func New(opts ...Option) route.Middleware {
	cfg := &config{
		realm:     "Restricted",
		skipPaths: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	challenge := "Basic realm=" + strconv.Quote(cfg.realm)

	return route.MiddlewareFunc(func(req *message.Request, next route.Handler) (*message.Response, error) {
		if _, skip := cfg.skipPaths[req.Path()]; skip {
			return next.Handle(req)
		}

		user, pass, ok := parseBasicAuth(req.HeaderLine("Authorization"))
		if !ok || !cfg.valid(user, pass) {
			return cfg.unauthorized(req).WithHeader("WWW-Authenticate", challenge), nil
		}

		return next.Handle(req.WithAttribute(UserAttribute, user))
	})
}

// Username returns the authenticated user name, or "".
func Username(req *message.Request) string {
	if v, ok := req.Attribute(UserAttribute); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (cfg *config) valid(user, pass string) bool {
	if cfg.validator != nil {
		return cfg.validator(user, pass)
	}
	want, ok := cfg.users[user]
	if !ok {
		// Unknown users cost the same comparison as known ones.
		subtle.ConstantTimeCompare([]byte(pass), []byte(pass))
		return false
	}
	return subtle.ConstantTimeCompare([]byte(pass), []byte(want)) == 1
}

func (cfg *config) unauthorized(req *message.Request) *message.Response {
	if cfg.unauthorizedHandler != nil {
		if resp := cfg.unauthorizedHandler(req); resp != nil {
			return resp
		}
	}
	return message.Text(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
}

// parseBasicAuth parses an "Authorization: Basic ..." header value.
func parseBasicAuth(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	return strings.Cut(string(decoded), ":")
}
