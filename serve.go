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
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/propagation"

	"github.com/jahau/router/logging"
	"github.com/jahau/router/message"
)

// ServeHTTP adapts the router to net/http.
//
// Unmatched requests are answered by the not-found handler. A path that
// matches under other methods gets 405 Method Not Allowed with an Allow
// header. Pipeline errors are passed to the error handler, and so is the
// compile error of a router whose table cannot be built. Trace context in
// the request headers becomes the parent of the dispatch span.
//
// The request body is read through http.MaxBytesReader; a body over the
// limit is reported to the error handler as a *RequestError with status 413.
func (r *Router) ServeHTTP(w http.ResponseWriter, hr *http.Request) {
	hr = hr.WithContext(r.propagator.Extract(hr.Context(), propagation.HeaderCarrier(hr.Header)))

	if _, err := r.compiled(); err != nil {
		r.errorHandler(w, hr, err)
		return
	}

	if r.maxBodySize > 0 && hr.Body != nil && hr.Body != http.NoBody {
		hr.Body = http.MaxBytesReader(w, hr.Body, r.maxBodySize)
	}

	req, err := message.FromHTTP(hr)
	if err != nil {
		r.errorHandler(w, hr, requestError(err))
		return
	}

	result := r.Match(req)

	fallback := r.notFound
	if result.IsMethodFailure() {
		fallback = MethodNotAllowedHandler(result.AllowedMethods())
	}

	resp, err := result.Process(req, fallback)
	if err != nil {
		r.errorHandler(w, hr, err)
		return
	}
	if resp == nil {
		r.errorHandler(w, hr, ErrNilResponse)
		return
	}

	if err := resp.Send(w); err != nil {
		logging.FromContext(hr.Context(), r.logger).Debug("writing response failed", "error", err)
	}
}

func requestError(err error) *RequestError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &RequestError{
			Status: http.StatusRequestEntityTooLarge,
			Err:    fmt.Errorf("%w: limit is %d bytes", ErrRequestBodyTooLarge, tooLarge.Limit),
		}
	}
	return &RequestError{
		Status: http.StatusBadRequest,
		Err:    fmt.Errorf("reading request: %w", err),
	}
}

// defaultErrorHandler answers with the status of errors implementing
// HTTPStatus, 500 otherwise. Only server errors are logged at error level.
func (r *Router) defaultErrorHandler(w http.ResponseWriter, hr *http.Request, err error) {
	status := http.StatusInternalServerError
	var sc interface{ HTTPStatus() int }
	if errors.As(err, &sc) {
		status = sc.HTTPStatus()
	}

	level := slog.LevelError
	if status < http.StatusInternalServerError {
		level = slog.LevelDebug
	}
	logging.FromContext(hr.Context(), r.logger).Log(hr.Context(), level, "request failed",
		"method", hr.Method,
		"path", hr.URL.Path,
		"status", status,
		"error", err,
	)
	http.Error(w, http.StatusText(status), status)
}
