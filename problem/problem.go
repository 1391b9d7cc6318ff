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
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jahau/router/logging"
)

// ContentType is the media type of problem responses.
const ContentType = "application/problem+json; charset=utf-8"

// StatusCoder is implemented by errors that carry their HTTP status.
type StatusCoder interface {
	error
	HTTPStatus() int
}

// Coder is implemented by errors with a stable machine-readable code.
// The code becomes the problem type, relative to the base URL.
type Coder interface {
	error
	Code() string
}

// WithStatus attaches an HTTP status to err.
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string   { return e.err.Error() }
func (e *statusError) Unwrap() error   { return e.err }
func (e *statusError) HTTPStatus() int { return e.status }

// Detail is an RFC 9457 problem detail object.
type Detail struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]any
}

// MarshalJSON writes extensions inline. Extensions cannot replace the
// standard members.
func (d Detail) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Extensions)+5)
	for k, v := range d.Extensions {
		m[k] = v
	}
	m["type"] = d.Type
	m["title"] = d.Title
	m["status"] = d.Status
	if d.Detail != "" {
		m["detail"] = d.Detail
	}
	if d.Instance != "" {
		m["instance"] = d.Instance
	}
	return json.Marshal(m)
}

// Option configures Handler.
type Option func(*config)

type config struct {
	baseURL         string
	logger          *slog.Logger
	internalDetails bool
	errorID         func() string
}

// WithBaseURL sets the prefix joined with error codes to form problem types.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithLogger logs server errors, with their error_id, to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithInternalDetails exposes the message of 5xx errors in the detail member.
func WithInternalDetails(enabled bool) Option {
	return func(c *config) {
		c.internalDetails = enabled
	}
}

// WithErrorID replaces the error_id generator. The default is a UUIDv4.
func WithErrorID(fn func() string) Option {
	return func(c *config) {
		c.errorID = fn
	}
}

// Handler returns an error handler for router.WithErrorHandler.
func Handler(opts ...Option) func(http.ResponseWriter, *http.Request, error) {
	cfg := &config{errorID: uuid.NewString}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, req *http.Request, err error) {
		d := cfg.format(req, err)

		if d.Status >= http.StatusInternalServerError && cfg.logger != nil {
			logging.FromContext(req.Context(), cfg.logger).Error("request failed",
				"method", req.Method,
				"path", req.URL.Path,
				"error_id", d.Extensions["error_id"],
				"error", err,
			)
		}

		body, merr := json.Marshal(d)
		if merr != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", ContentType)
		w.WriteHeader(d.Status)
		_, _ = w.Write(body)
	}
}

func (c *config) format(req *http.Request, err error) Detail {
	status := http.StatusInternalServerError
	var sc StatusCoder
	if errors.As(err, &sc) {
		status = sc.HTTPStatus()
	}

	d := Detail{
		Type:       "about:blank",
		Title:      http.StatusText(status),
		Status:     status,
		Instance:   req.URL.Path,
		Extensions: map[string]any{"error_id": c.errorID()},
	}
	if status < http.StatusInternalServerError || c.internalDetails {
		d.Detail = err.Error()
	}

	var coded Coder
	if errors.As(err, &coded) {
		code := coded.Code()
		d.Extensions["code"] = code
		if c.baseURL != "" {
			d.Type = c.baseURL + "/" + code
		} else {
			d.Type = code
		}
	}
	return d
}
