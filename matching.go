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
	"slices"
	"time"

	"github.com/jahau/router/compiler"
	"github.com/jahau/router/logging"
	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

// MatchingResult is the outcome of Router.Match. It is immutable and safe to
// share between goroutines.
type MatchingResult struct {
	router  *Router
	entry   *entry
	params  []compiler.Param
	allowed []string
}

// Match resolves the request against the routing table, compiling the table
// first if needed. A compile failure is logged and yields a failed result.
func (r *Router) Match(req *message.Request) *MatchingResult {
	t, err := r.compiled()
	if err != nil {
		return &MatchingResult{router: r}
	}

	path := req.Path()
	m := t.compiler.Match(req.Method(), path)
	if !m.Found {
		return &MatchingResult{
			router:  r,
			allowed: t.compiler.AllowedMethods(path),
		}
	}

	return &MatchingResult{
		router: r,
		entry:  m.Route.Payload().(*entry),
		params: m.Params,
	}
}

// IsSuccess reports whether a route matched.
func (m *MatchingResult) IsSuccess() bool {
	return m.entry != nil
}

// IsMethodFailure reports whether the path matched a route but the method
// did not.
func (m *MatchingResult) IsMethodFailure() bool {
	return m.entry == nil && len(m.allowed) > 0
}

// AllowedMethods returns the methods registered for the path on a method
// failure, sorted. It is empty otherwise.
func (m *MatchingResult) AllowedMethods() []string {
	return slices.Clone(m.allowed)
}

// Route returns the matched route, or nil.
func (m *MatchingResult) Route() *route.Route {
	if m.entry == nil {
		return nil
	}
	return m.entry.route
}

// Pattern returns the matched route's full pattern including group
// prefixes, or "" when nothing matched.
func (m *MatchingResult) Pattern() string {
	if m.entry == nil {
		return ""
	}
	return m.entry.pattern.String()
}

// Params returns the extracted path parameters.
func (m *MatchingResult) Params() map[string]string {
	out := make(map[string]string, len(m.params))
	for _, p := range m.params {
		out[p.Key] = p.Value
	}
	return out
}

// Process runs the request through the matched route's pipeline.
//
// Path parameters are attached to the request as attributes in pattern
// order. For a route without a handler the pipeline ends in fallback. When
// nothing matched, only fallback runs. A nil fallback answers 404.
//
// Errors from middleware or handlers are returned unchanged.
func (m *MatchingResult) Process(req *message.Request, fallback route.Handler) (*message.Response, error) {
	if fallback == nil {
		fallback = NotFoundHandler()
	}

	r := m.router
	start := time.Now()

	if m.entry == nil {
		outcome := outcomeNotFound
		if m.IsMethodFailure() {
			outcome = outcomeMethodNotAllowed
		}
		logging.FromContext(req.Context(), r.logger).Debug("no route matched",
			"method", req.Method(),
			"path", req.Path(),
			"outcome", outcome,
		)
		resp, err := fallback.Handle(req)
		r.obs.record(req.Context(), "", outcome, start)
		return resp, err
	}

	for _, p := range m.params {
		req = req.WithAttribute(p.Key, p.Value)
	}

	ctx, span := r.obs.startSpan(req.Context(), m.entry)
	defer span.End()
	req = req.WithContext(ctx)

	pipeline := m.entry.pipeline
	if pipeline == nil {
		pipeline = compose(m.entry.chain, fallback)
	}

	resp, err := pipeline.Handle(req)

	outcome := outcomeMatched
	if err != nil {
		outcome = outcomeError
		logging.FromContext(ctx, r.logger).Debug("route pipeline failed",
			"method", req.Method(),
			"route", m.entry.pattern.String(),
			"error", err,
		)
	}
	r.obs.endSpan(span, resp, err)
	r.obs.record(ctx, m.entry.pattern.String(), outcome, start)

	return resp, err
}
