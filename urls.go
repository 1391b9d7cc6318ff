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
	"fmt"
	"net/url"
	"strings"
)

// URL builds the path of the named route from params, appending query when
// it is non-empty.
//
// Every parameter of the route is required. Values are checked against
// their constraints and path-escaped; catch-all values keep their slashes.
//
// Example:
//
//	u, err := r.URL("users.show", map[string]string{"id": "42"}, url.Values{"tab": {"posts"}})
//	// u == "/api/users/42?tab=posts"
func (r *Router) URL(name string, params map[string]string, query url.Values) (string, error) {
	t, err := r.compiled()
	if err != nil {
		return "", err
	}

	e, ok := t.named[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	var b strings.Builder
	for _, seg := range e.pattern.Segments() {
		b.WriteByte('/')
		if seg.Static {
			b.WriteString(seg.Value)
			continue
		}

		v, ok := params[seg.Value]
		if !ok {
			return "", fmt.Errorf("%w: %q for route %q", ErrMissingRouteParameter, seg.Value, name)
		}

		if seg.CatchAll {
			parts := strings.Split(v, "/")
			for i, p := range parts {
				parts[i] = url.PathEscape(p)
			}
			b.WriteString(strings.Join(parts, "/"))
			continue
		}

		if seg.Constraint != nil && !seg.Constraint.MatchString(v) {
			return "", fmt.Errorf("%w: %q=%q for route %q", ErrInvalidRouteParameter, seg.Value, v, name)
		}
		b.WriteString(url.PathEscape(v))
	}

	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}

	return b.String(), nil
}

// MustURL is like URL but panics on error.
func (r *Router) MustURL(name string, params map[string]string, query url.Values) string {
	u, err := r.URL(name, params, query)
	if err != nil {
		panic(err)
	}
	return u
}
