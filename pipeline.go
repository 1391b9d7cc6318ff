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
	"net/http"
	"strings"

	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

// link binds one middleware to the rest of the pipeline.
type link struct {
	mw   route.Middleware
	next route.Handler
}

func (l link) Handle(req *message.Request) (*message.Response, error) {
	return l.mw.Process(req, l.next)
}

// compose folds mws around terminal so that mws[0] runs first.
func compose(mws []route.Middleware, terminal route.Handler) route.Handler {
	h := terminal
	for i := len(mws) - 1; i >= 0; i-- {
		h = link{mw: mws[i], next: h}
	}
	return h
}

// NotFoundHandler returns a handler answering 404 Not Found.
func NotFoundHandler() route.Handler {
	return route.HandlerFunc(func(*message.Request) (*message.Response, error) {
		return message.Text(http.StatusNotFound, http.StatusText(http.StatusNotFound)), nil
	})
}

// MethodNotAllowedHandler returns a handler answering 405 Method Not Allowed
// with an Allow header listing allowed.
func MethodNotAllowedHandler(allowed []string) route.Handler {
	allow := strings.Join(allowed, ", ")
	return route.HandlerFunc(func(*message.Request) (*message.Response, error) {
		return message.Text(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed)).
			WithHeader("Allow", allow), nil
	})
}
