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


package route

import "github.com/jahau/router/message"

// Handler processes a request and produces a response.
type Handler interface {
	Handle(req *message.Request) (*message.Response, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(req *message.Request) (*message.Response, error)

// Handle calls f(req).
func (f HandlerFunc) Handle(req *message.Request) (*message.Response, error) {
	return f(req)
}

// Middleware wraps the next handler of a pipeline.
//
// An implementation either returns a response of its own without calling
// next (short-circuit) or calls next at most once, possibly with a modified
// request, and may post-process the response it gets back.
type Middleware interface {
	Process(req *message.Request, next Handler) (*message.Response, error)
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(req *message.Request, next Handler) (*message.Response, error)

// Process calls f(req, next).
func (f MiddlewareFunc) Process(req *message.Request, next Handler) (*message.Response, error) {
	return f(req, next)
}
