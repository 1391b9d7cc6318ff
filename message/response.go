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
	"fmt"
	"net/http"
	"slices"
)

// Response is an immutable HTTP response value.
type Response struct {
	status int
	reason string
	header http.Header
	body   []byte
}

// NewResponse creates a response with the given status code and no body.
func NewResponse(status int) *Response {
	return &Response{
		status: status,
		header: make(http.Header),
	}
}

// Text creates a plain text response.
func Text(status int, body string) *Response {
	return NewResponse(status).
		WithHeader("Content-Type", "text/plain; charset=utf-8").
		WithBody([]byte(body))
}

func (r *Response) clone() *Response {
	nr := *r
	return &nr
}

// StatusCode returns the status code.
func (r *Response) StatusCode() int {
	return r.status
}

// ReasonPhrase returns the reason phrase. When none was set explicitly the
// standard text for the status code is returned.
func (r *Response) ReasonPhrase() string {
	if r.reason == "" {
		return http.StatusText(r.status)
	}
	return r.reason
}

// Header returns a copy of the response headers.
func (r *Response) Header() http.Header {
	return r.header.Clone()
}

// HeaderLine returns the first value of the named header.
func (r *Response) HeaderLine(name string) string {
	return r.header.Get(name)
}

// Body returns a copy of the response body.
func (r *Response) Body() []byte {
	return slices.Clone(r.body)
}

// BodyLen returns the body size in bytes without copying it.
func (r *Response) BodyLen() int {
	return len(r.body)
}

// WithStatus returns a copy with the given status code and reason phrase.
// An empty reason falls back to the standard status text.
func (r *Response) WithStatus(code int, reason string) *Response {
	nr := r.clone()
	nr.status = code
	nr.reason = reason
	return nr
}

// WithHeader returns a copy with the header set to value.
func (r *Response) WithHeader(name, value string) *Response {
	nr := r.clone()
	nr.header = r.header.Clone()
	nr.header.Set(name, value)
	return nr
}

// WithAddedHeader returns a copy with value appended to the header.
func (r *Response) WithAddedHeader(name, value string) *Response {
	nr := r.clone()
	nr.header = r.header.Clone()
	nr.header.Add(name, value)
	return nr
}

// WithBody returns a copy with a copy of body.
func (r *Response) WithBody(body []byte) *Response {
	nr := r.clone()
	nr.body = slices.Clone(body)
	return nr
}

// Send writes the response to w. The reason phrase is not part of the
// HTTP/1.1 wire format produced by net/http and is therefore dropped.
func (r *Response) Send(w http.ResponseWriter) error {
	h := w.Header()
	for k, vv := range r.header {
		h[k] = append([]string(nil), vv...)
	}

	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(r.body) == 0 {
		return nil
	}
	if _, err := w.Write(r.body); err != nil {
		return fmt.Errorf("write response body: %w", err)
	}
	return nil
}
