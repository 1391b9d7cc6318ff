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
	"sort"
)

// RouteInfo describes a compiled route.
type RouteInfo struct {
	Method     string // HTTP method, or "*" for any method
	Pattern    string // full pattern including group prefixes
	Name       string // route name, empty if unnamed
	Middleware int    // number of middleware in the route's pipeline
	HasHandler bool   // false if the pipeline ends in the fallback handler
}

// Routes returns all compiled routes sorted by method, then pattern.
// It compiles the table if needed and returns nil if compilation fails.
func (r *Router) Routes() []RouteInfo {
	t, err := r.compiled()
	if err != nil {
		return nil
	}

	routes := make([]RouteInfo, 0, len(t.entries))
	for _, e := range t.entries {
		routes = append(routes, RouteInfo{
			Method:     e.method,
			Pattern:    e.pattern.String(),
			Name:       e.route.Name(),
			Middleware: len(e.chain),
			HasHandler: e.pipeline != nil,
		})
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Method == routes[j].Method {
			return routes[i].Pattern < routes[j].Pattern
		}
		return routes[i].Method < routes[j].Method
	})

	return routes
}
