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
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

func TestGroupMiddlewareFullStackCalled(t *testing.T) {
	t.Parallel()

	group := route.NewGroupFunc("/group", func(c route.Collector) {
		c.AddRoute(route.Get("/test1", nil, route.WithName("request1")))
	})

	setAttribute := route.MiddlewareFunc(func(req *message.Request, next route.Handler) (*message.Response, error) {
		return next.Handle(req.WithAttribute("middleware", "middleware1"))
	})
	reasonFromAttributes := route.MiddlewareFunc(func(req *message.Request, _ route.Handler) (*message.Response, error) {
		var sb strings.Builder
		for _, k := range req.AttributeKeys() {
			v, _ := req.Attribute(k)
			fmt.Fprint(&sb, v)
		}
		return message.NewResponse(http.StatusOK).WithStatus(http.StatusOK, sb.String()), nil
	})

	group.AddMiddleware(reasonFromAttributes).AddMiddleware(setAttribute)

	r := MustNew()
	r.AddGroup(group)

	req := get("/group/test1")
	result := r.Match(req)
	require.True(t, result.IsSuccess())

	resp, err := result.Process(req, NotFoundHandler())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "middleware1", resp.ReasonPhrase())
}

func TestGroupMiddlewareStackInterrupted(t *testing.T) {
	t.Parallel()

	tr := &trail{}
	group := route.NewGroupFunc("/group", func(c route.Collector) {
		c.AddRoute(route.Get("/test1", tr.handler("handler"), route.WithName("request1")))
	})

	forbid := route.MiddlewareFunc(func(*message.Request, route.Handler) (*message.Response, error) {
		tr.add("forbid")
		return message.NewResponse(http.StatusForbidden), nil
	})
	group.AddMiddleware(tr.middleware("inner")).AddMiddleware(forbid)

	r := MustNew()
	r.AddGroup(group)

	req := get("/group/test1")
	resp, err := r.Match(req).Process(req, NotFoundHandler())
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
	assert.Equal(t, "forbid", tr.String())
}

func TestNestedMiddlewareOrder(t *testing.T) {
	t.Parallel()

	tr := &trail{}
	r := MustNew()
	r.AddMiddleware(tr.middleware("root"))
	r.AddGroupFunc("/api", func(api route.Collector) {
		api.AddMiddleware(tr.middleware("api-1"))
		api.AddMiddleware(tr.middleware("api-2"))
		api.AddGroupFunc("/v1", func(v1 route.Collector) {
			v1.AddMiddleware(tr.middleware("v1"))
			v1.AddRoute(route.Get("/users", tr.handler("handler"),
				route.WithMiddleware(tr.middleware("route-1"), tr.middleware("route-2"))))
		})
	})

	req := get("/api/v1/users")
	resp, err := r.Match(req).Process(req, nil)
	require.NoError(t, err)
	assert.Equal(t, "handler", string(resp.Body()))
	assert.Equal(t, "root,api-2,api-1,v1,route-2,route-1,handler", tr.String())
}

func TestSiblingGroupsDoNotShareMiddleware(t *testing.T) {
	t.Parallel()

	tr := &trail{}
	r := MustNew()
	r.AddGroupFunc("/a", func(c route.Collector) {
		c.AddMiddleware(tr.middleware("a"))
		c.AddRoute(route.Get("/x", tr.handler("ax")))
	})
	r.AddGroupFunc("/b", func(c route.Collector) {
		c.AddMiddleware(tr.middleware("b"))
		c.AddRoute(route.Get("/x", tr.handler("bx")))
	})

	req := get("/b/x")
	_, err := r.Match(req).Process(req, nil)
	require.NoError(t, err)
	assert.Equal(t, "b,bx", tr.String())
}

func TestDeclarativeAndCallbackGroupsDispatchAlike(t *testing.T) {
	t.Parallel()

	build := func(declarative bool) string {
		tr := &trail{}
		var g *route.Group
		if declarative {
			g = route.NewGroup("/api",
				route.Get("/list", tr.handler("list")),
				route.NewGroup("/admin", route.Get("/stats", tr.handler("stats"))),
			)
			g.AddMiddleware(tr.middleware("m1")).AddMiddleware(tr.middleware("m2"))
		} else {
			g = route.NewGroupFunc("/api", func(c route.Collector) {
				c.AddRoute(route.Get("/list", tr.handler("list")))
				c.AddGroupFunc("/admin", func(c route.Collector) {
					c.AddRoute(route.Get("/stats", tr.handler("stats")))
				})
				c.AddMiddleware(tr.middleware("m1"))
				c.AddMiddleware(tr.middleware("m2"))
			})
		}

		r := MustNew()
		r.AddGroup(g)
		for _, path := range []string{"/api/list", "/api/admin/stats"} {
			req := get(path)
			_, err := r.Match(req).Process(req, nil)
			require.NoError(t, err)
		}
		return tr.String()
	}

	assert.Equal(t, build(true), build(false))
	assert.Equal(t, "m2,m1,list,m2,m1,stats", build(true))
}

func TestHandlerlessRouteEndsInFallback(t *testing.T) {
	t.Parallel()

	tr := &trail{}
	r := MustNew()
	r.AddGroupFunc("/g", func(c route.Collector) {
		c.AddMiddleware(tr.middleware("group"))
		c.AddRoute(route.Get("/empty", nil))
	})

	req := get("/g/empty")
	resp, err := r.Match(req).Process(req, tr.handler("fallback"))
	require.NoError(t, err)
	assert.Equal(t, "fallback", string(resp.Body()))
	assert.Equal(t, "group,fallback", tr.String())
}

func TestUnmatchedRunsOnlyFallback(t *testing.T) {
	t.Parallel()

	tr := &trail{}
	r := MustNew()
	r.AddMiddleware(tr.middleware("root"))
	r.AddRoute(route.Get("/known", tr.handler("known")))

	t.Run("not found", func(t *testing.T) {
		req := get("/unknown")
		result := r.Match(req)
		assert.False(t, result.IsSuccess())
		assert.False(t, result.IsMethodFailure())
		assert.Nil(t, result.Route())
		assert.Empty(t, result.Pattern())

		resp, err := result.Process(req, okHandler("fallback"))
		require.NoError(t, err)
		assert.Equal(t, "fallback", string(resp.Body()))
	})

	t.Run("method failure", func(t *testing.T) {
		req := message.NewRequest(http.MethodDelete, "/known", nil)
		result := r.Match(req)
		assert.False(t, result.IsSuccess())
		assert.True(t, result.IsMethodFailure())
		assert.Equal(t, []string{"GET"}, result.AllowedMethods())

		resp, err := result.Process(req, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	})

	assert.Empty(t, tr.String())
}

func TestParamsBecomeAttributes(t *testing.T) {
	t.Parallel()

	var seen *message.Request
	capture := route.HandlerFunc(func(req *message.Request) (*message.Response, error) {
		seen = req
		return message.NewResponse(http.StatusNoContent), nil
	})

	r := MustNew()
	r.AddGroupFunc("/orgs/{org}", func(c route.Collector) {
		c.AddRoute(route.Get("/repos/{repo:[a-z]+}/files/{path...}", capture, route.WithName("file")))
	})

	req := get("/orgs/acme/repos/router/files/docs/readme.md")
	result := r.Match(req)
	require.True(t, result.IsSuccess())
	assert.Equal(t, "/orgs/{org}/repos/{repo:[a-z]+}/files/{path...}", result.Pattern())
	assert.Equal(t, "file", result.Route().Name())
	assert.Equal(t, map[string]string{"org": "acme", "repo": "router", "path": "docs/readme.md"}, result.Params())

	_, err := result.Process(req, nil)
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, []string{"org", "repo", "path"}, seen.AttributeKeys())

	v, ok := seen.Attribute("path")
	assert.True(t, ok)
	assert.Equal(t, "docs/readme.md", v)

	// Constraint rejects digits.
	assert.False(t, r.Match(get("/orgs/acme/repos/r2d2/files/x")).IsSuccess())
}

func TestStaticRoutesWinOverDynamic(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.AddRoute(route.Get("/users/{id}", okHandler("show")))
	r.AddRoute(route.Get("/users/me", okHandler("me")))

	req := get("/users/me")
	resp, err := r.Match(req).Process(req, nil)
	require.NoError(t, err)
	assert.Equal(t, "me", string(resp.Body()))

	req = get("/users/7")
	resp, err = r.Match(req).Process(req, nil)
	require.NoError(t, err)
	assert.Equal(t, "show", string(resp.Body()))
}

func TestHeadFallsBackToGet(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.AddRoute(route.Get("/page", okHandler("page")))

	result := r.Match(message.NewRequest(http.MethodHead, "/page", nil))
	require.True(t, result.IsSuccess())
	assert.Equal(t, route.GET, result.Route().Method())
}

func TestAnyMethodRoute(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.AddRoute(route.AnyMethod("/hook", okHandler("any")))
	r.AddRoute(route.Post("/hook", okHandler("post")))

	for method, want := range map[string]string{
		http.MethodGet:    "any",
		http.MethodPut:    "any",
		http.MethodPost:   "post",
		http.MethodDelete: "any",
	} {
		req := message.NewRequest(method, "/hook", nil)
		resp, err := r.Match(req).Process(req, nil)
		require.NoError(t, err, method)
		assert.Equal(t, want, string(resp.Body()), method)
	}
}

func TestTrailingSlashIsSignificant(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.AddGroupFunc("/api", func(c route.Collector) {
		c.AddRoute(route.Get("/", okHandler("index")))
	})

	assert.True(t, r.Match(get("/api/")).IsSuccess())
	assert.False(t, r.Match(get("/api")).IsSuccess())
}

func TestErrorsPropagateUnchanged(t *testing.T) {
	t.Parallel()

	errDenied := errors.New("denied")
	tr := &trail{}

	r := MustNew()
	r.AddGroupFunc("/g", func(c route.Collector) {
		c.AddMiddleware(route.MiddlewareFunc(func(req *message.Request, next route.Handler) (*message.Response, error) {
			resp, err := next.Handle(req)
			tr.add("outer-after")
			return resp, err
		}))
		c.AddMiddleware(route.MiddlewareFunc(func(*message.Request, route.Handler) (*message.Response, error) {
			return nil, errDenied
		}))
		c.AddRoute(route.Get("/x", tr.handler("handler")))
	})

	req := get("/g/x")
	resp, err := r.Match(req).Process(req, nil)
	assert.Nil(t, resp)
	assert.Same(t, errDenied, err)
	// The failing middleware was added last, so it runs first and the
	// other middleware never sees the request.
	assert.Empty(t, tr.String())
}

func TestPanicsAreNotRecovered(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.AddRoute(route.Get("/panic", route.HandlerFunc(func(*message.Request) (*message.Response, error) {
		panic("kaboom")
	})))

	req := get("/panic")
	result := r.Match(req)
	assert.PanicsWithValue(t, "kaboom", func() {
		_, _ = result.Process(req, nil)
	})
}

func TestConcurrentDispatch(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	counts := make(map[string]int)
	count := route.MiddlewareFunc(func(req *message.Request, next route.Handler) (*message.Response, error) {
		mu.Lock()
		counts[req.Path()]++
		mu.Unlock()
		return next.Handle(req)
	})

	r := MustNew()
	r.AddMiddleware(count)
	for i := range 20 {
		r.AddRoute(route.Get(fmt.Sprintf("/static/%d", i), okHandler(fmt.Sprint(i))))
	}
	r.AddRoute(route.Get("/items/{id}", route.HandlerFunc(func(req *message.Request) (*message.Response, error) {
		id, _ := req.Attribute("id")
		return message.Text(http.StatusOK, id.(string)), nil
	})))
	r.MustCompile()

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				req := get(fmt.Sprintf("/items/%d", g*100+i))
				resp, err := r.Match(req).Process(req, nil)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, fmt.Sprint(g*100+i), string(resp.Body()))

				req = get(fmt.Sprintf("/static/%d", i%20))
				resp, err = r.Match(req).Process(req, nil)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, fmt.Sprint(i%20), string(resp.Body()))
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, counts, 8*50+20)
}
