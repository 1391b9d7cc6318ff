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

// Collector is the registration capability handed to group builder
// callbacks. It exposes only the operations needed to populate a group, so
// route tables can be declared and unit-tested without a router.
type Collector interface {
	AddRoute(r *Route) Collector
	AddGroup(g *Group) Collector
	AddGroupFunc(prefix string, fn func(Collector)) Collector
	AddGroupItems(prefix string, items ...Item) Collector
	AddMiddleware(mw Middleware) Collector
}

// Collector returns a restricted view of g.
func (g *Group) Collector() Collector {
	return collector{g: g}
}

type collector struct {
	g *Group
}

func (c collector) AddRoute(r *Route) Collector {
	c.g.AddRoute(r)
	return c
}

func (c collector) AddGroup(g *Group) Collector {
	c.g.AddGroup(g)
	return c
}

func (c collector) AddGroupFunc(prefix string, fn func(Collector)) Collector {
	c.g.AddGroupFunc(prefix, fn)
	return c
}

func (c collector) AddGroupItems(prefix string, items ...Item) Collector {
	c.g.AddGroupItems(prefix, items...)
	return c
}

func (c collector) AddMiddleware(mw Middleware) Collector {
	c.g.AddMiddleware(mw)
	return c
}
