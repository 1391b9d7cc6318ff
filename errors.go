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
)

var (
	// ErrRouterFrozen indicates a registration after the routing table was compiled.
	ErrRouterFrozen = errors.New("router is frozen")

	// ErrDuplicateRouteName indicates that two routes share a name.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrRouteNotFound indicates that no route carries the requested name.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingRouteParameter indicates that a parameter needed to build a URL is missing.
	ErrMissingRouteParameter = errors.New("missing required parameter")

	// ErrInvalidRouteParameter indicates that a parameter value violates its constraint.
	ErrInvalidRouteParameter = errors.New("parameter does not satisfy constraint")

	// ErrNilResponse indicates that a pipeline returned neither a response nor an error.
	ErrNilResponse = errors.New("handler returned nil response")

	// ErrRequestBodyTooLarge indicates a request body over the limit set
	// with WithMaxBodySize.
	ErrRequestBodyTooLarge = errors.New("request body too large")

	// ErrBloomFilterSizeZero indicates that the bloom filter size must be greater than zero.
	ErrBloomFilterSizeZero = errors.New("bloom filter size must be non-zero")

	// ErrNilOption indicates that an option was given a nil value.
	ErrNilOption = errors.New("option value must not be nil")
)

// ConfigurationError reports a routing table that cannot be compiled.
// It carries the offending route and wraps the cause.
type ConfigurationError struct {
	Method  string
	Pattern string
	Name    string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("router: route %s %s (%s): %v", e.Method, e.Pattern, e.Name, e.Err)
	}
	return fmt.Sprintf("router: route %s %s: %v", e.Method, e.Pattern, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// RequestError is an error ServeHTTP reports before dispatching, such as a
// request body that could not be read. HTTPStatus gives the response status.
type RequestError struct {
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code for the error response.
func (e *RequestError) HTTPStatus() int {
	return e.Status
}
