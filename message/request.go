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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
)

// Request is an immutable HTTP request value.
//
// Every With* method returns a modified copy and leaves the receiver untouched,
// so a Request may be shared freely between the layers of a middleware
// pipeline. Attributes keep their insertion order; replacing an existing key
// keeps its original position.
type Request struct {
	ctx    context.Context
	method string
	url    *url.URL
	header http.Header
	body   []byte

	attrKeys []string
	attrs    map[string]any
}

// NewRequest creates a request for the given method and target.
// The target may be a path ("/users/1?x=y") or an absolute URL.
// It panics if the target cannot be parsed.
func NewRequest(method, target string, body []byte) *Request {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		panic(fmt.Sprintf("message: invalid request target %q: %v", target, err))
	}

	return &Request{
		ctx:    context.Background(),
		method: method,
		url:    u,
		header: make(http.Header),
		body:   slices.Clone(body),
	}
}

// FromHTTP converts a transport request into a Request value.
// The request body is read completely and replaced on r so that it stays
// readable by the caller.
func FromHTTP(r *http.Request) (*Request, error) {
	var body []byte
	if r.Body != nil && r.Body != http.NoBody {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(b))
		body = b
	}

	u := *r.URL

	return &Request{
		ctx:    r.Context(),
		method: r.Method,
		url:    &u,
		header: r.Header.Clone(),
		body:   body,
	}, nil
}

func (r *Request) clone() *Request {
	nr := *r
	return &nr
}

// Method returns the HTTP method.
func (r *Request) Method() string {
	return r.method
}

// Path returns the URL path.
func (r *Request) Path() string {
	if r.url.Path == "" {
		return "/"
	}
	return r.url.Path
}

// URL returns a copy of the request URL.
func (r *Request) URL() *url.URL {
	u := *r.url
	return &u
}

// Header returns a copy of the request headers.
func (r *Request) Header() http.Header {
	return r.header.Clone()
}

// HeaderLine returns the first value of the named header.
func (r *Request) HeaderLine(name string) string {
	return r.header.Get(name)
}

// Body returns a copy of the request body.
func (r *Request) Body() []byte {
	return slices.Clone(r.body)
}

// BodyLen returns the body size in bytes without copying it.
func (r *Request) BodyLen() int {
	return len(r.body)
}

// Context returns the request context. It is never nil.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Attribute returns the attribute stored under key.
func (r *Request) Attribute(key string) (any, bool) {
	v, ok := r.attrs[key]
	return v, ok
}

// AttributeKeys returns attribute keys in insertion order.
func (r *Request) AttributeKeys() []string {
	return slices.Clone(r.attrKeys)
}

// Attributes returns a copy of all attributes.
func (r *Request) Attributes() map[string]any {
	out := make(map[string]any, len(r.attrs))
	for _, k := range r.attrKeys {
		out[k] = r.attrs[k]
	}
	return out
}

// WithAttribute returns a copy of the request carrying the attribute.
func (r *Request) WithAttribute(key string, value any) *Request {
	nr := r.clone()
	nr.attrs = make(map[string]any, len(r.attrs)+1)
	for k, v := range r.attrs {
		nr.attrs[k] = v
	}
	if _, exists := r.attrs[key]; !exists {
		nr.attrKeys = append(slices.Clone(r.attrKeys), key)
	}
	nr.attrs[key] = value
	return nr
}

// WithHeader returns a copy of the request with the header set to value.
func (r *Request) WithHeader(name, value string) *Request {
	nr := r.clone()
	nr.header = r.header.Clone()
	nr.header.Set(name, value)
	return nr
}

// WithBody returns a copy of the request with a copy of body.
func (r *Request) WithBody(body []byte) *Request {
	nr := r.clone()
	nr.body = slices.Clone(body)
	return nr
}

// WithContext returns a copy of the request bound to ctx.
// It panics if ctx is nil, matching http.Request.WithContext.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic("message: nil context")
	}
	nr := r.clone()
	nr.ctx = ctx
	return nr
}
