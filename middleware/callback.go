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


package middleware

import (
	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

// Callback turns fn into middleware. fn receives the request and the rest of
// the pipeline; it may call next at most once or answer on its own.
//
// Example:
//
//	api.AddMiddleware(middleware.Callback(func(req *message.Request, next route.Handler) (*message.Response, error) {
//	    if req.HeaderLine("X-Api-Key") == "" {
//	        return message.NewResponse(http.StatusForbidden), nil
//	    }
//	    return next.Handle(req)
//	}))
func Callback(fn func(req *message.Request, next route.Handler) (*message.Response, error)) route.Middleware {
	if fn == nil {
		panic("middleware: nil callback")
	}
	return route.MiddlewareFunc(fn)
}

// Respond turns fn into middleware that always answers with fn's response.
// The rest of the pipeline never runs.
func Respond(fn func(req *message.Request) (*message.Response, error)) route.Middleware {
	if fn == nil {
		panic("middleware: nil responder")
	}
	return route.MiddlewareFunc(func(req *message.Request, _ route.Handler) (*message.Response, error) {
		return fn(req)
	})
}
