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

import (
	"fmt"
	"slices"
)

// Item is an element of a group: either a *Route or a *Group.
type Item interface {
	isItem()
}

// Group is a node of the routing tree. It holds an ordered list of routes
// and sub-groups, a path prefix and its own middleware.
//
// Prefixes are never rewritten: the effective prefix of a nested group is
// the concatenation of its ancestors' prefixes, computed when the routing
// table is compiled. Middleware accumulates the same way, outer groups
// first; within one group the most recently added middleware runs first.
//
// Groups are built during setup and sealed when the routing table is
// compiled. Modifying a sealed group panics.
//
// Example:
//
//	api := route.NewGroupFunc("/api", func(c route.Collector) {
//	    c.AddRoute(route.Post("/logout", logout))
//	    c.AddGroupFunc("/post", func(c route.Collector) {
//	        c.AddRoute(route.Get("/", listPosts))
//	        c.AddRoute(route.Get("/{id}", viewPost))
//	    })
//	}).AddMiddleware(auth)
type Group struct {
	prefix      string
	items       []Item
	middlewares []Middleware // registration order
	sealed      bool
}

// NewGroup creates a group from a declarative list of routes and groups.
func NewGroup(prefix string, items ...Item) *Group {
	g := &Group{prefix: prefix}
	for _, it := range items {
		g.addItem(it)
	}
	return g
}

// NewGroupFunc creates a group and lets fn populate it through a Collector.
func NewGroupFunc(prefix string, fn func(Collector)) *Group {
	g := &Group{prefix: prefix}
	if fn != nil {
		fn(g.Collector())
	}
	return g
}

func (g *Group) isItem() {}

func (g *Group) checkOpen() {
	if g.sealed {
		panic(fmt.Errorf("route: group %q: %w", g.prefix, ErrGroupSealed))
	}
}

func (g *Group) addItem(it Item) {
	switch v := it.(type) {
	case *Route:
		g.AddRoute(v)
	case *Group:
		g.AddGroup(v)
	default:
		panic(fmt.Sprintf("route: unsupported group item %T", it))
	}
}

// AddRoute appends r to the group's items.
func (g *Group) AddRoute(r *Route) *Group {
	g.checkOpen()
	if r == nil {
		panic("route: nil route")
	}
	g.items = append(g.items, r)
	return g
}

// AddGroup appends a pre-built group. Its prefix is kept as is.
// It panics with ErrGroupCycle if g is child or one of its descendants.
func (g *Group) AddGroup(child *Group) *Group {
	g.checkOpen()
	if child == nil {
		panic("route: nil group")
	}
	if child.contains(g) {
		panic(fmt.Errorf("route: adding group %q to %q: %w", child.prefix, g.prefix, ErrGroupCycle))
	}
	g.items = append(g.items, child)
	return g
}

// contains reports whether target is g or one of its descendants.
func (g *Group) contains(target *Group) bool {
	if g == target {
		return true
	}
	for _, it := range g.items {
		if child, ok := it.(*Group); ok && child.contains(target) {
			return true
		}
	}
	return false
}

// AddGroupFunc builds a child group with fn and appends it.
func (g *Group) AddGroupFunc(prefix string, fn func(Collector)) *Group {
	g.checkOpen()
	return g.AddGroup(NewGroupFunc(prefix, fn))
}

// AddGroupItems builds a child group from items and appends it.
func (g *Group) AddGroupItems(prefix string, items ...Item) *Group {
	g.checkOpen()
	return g.AddGroup(NewGroup(prefix, items...))
}

// AddMiddleware adds middleware to the group. The last middleware added is
// the first to run.
func (g *Group) AddMiddleware(mw Middleware) *Group {
	g.checkOpen()
	if mw == nil {
		panic("route: nil middleware")
	}
	g.middlewares = append(g.middlewares, mw)
	return g
}

// Prefix returns the group's own prefix.
func (g *Group) Prefix() string {
	return g.prefix
}

// Items returns a copy of the group's routes and sub-groups in insertion order.
func (g *Group) Items() []Item {
	return slices.Clone(g.items)
}

// Middlewares returns the group's own middleware in execution order:
// most recently added first.
func (g *Group) Middlewares() []Middleware {
	return reversed(g.middlewares)
}

// Sealed reports whether the group was sealed.
func (g *Group) Sealed() bool {
	return g.sealed
}

// Seal freezes the group and all its descendants.
func (g *Group) Seal() {
	g.sealed = true
	for _, it := range g.items {
		if child, ok := it.(*Group); ok {
			child.Seal()
		}
	}
}

// WalkFunc is called for every route reached by Walk. chain lists the
// groups from the walked group down to the route's parent. The slice is
// reused between calls and must be copied to be retained.
type WalkFunc func(chain []*Group, r *Route) error

// Walk visits every route depth-first in insertion order. It stops at the
// first error returned by fn.
func (g *Group) Walk(fn WalkFunc) error {
	return g.walk(make([]*Group, 0, 8), fn)
}

func (g *Group) walk(chain []*Group, fn WalkFunc) error {
	chain = append(chain, g)
	for _, it := range g.items {
		switch v := it.(type) {
		case *Route:
			if err := fn(chain, v); err != nil {
				return err
			}
		case *Group:
			if err := v.walk(chain, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
