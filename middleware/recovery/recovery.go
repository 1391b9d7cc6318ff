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


package recovery

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/term"

	"github.com/jahau/router/logging"
	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

const defaultStackSize = 4 << 10

type config struct {
	logger      *slog.Logger
	handler     func(req *message.Request, err any) *message.Response
	stackTrace  bool
	stackSize   int
	prettyStack *bool
	stackOut    io.Writer
}

func defaultConfig() *config {
	return &config{
		logger:     slog.Default(),
		handler:    defaultHandler,
		stackTrace: true,
		stackSize:  defaultStackSize,
		stackOut:   os.Stderr,
	}
}

func defaultHandler(*message.Request, any) *message.Response {
	return message.Text(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// New returns middleware that recovers from panics in the rest of the pipeline.
func New(opts ...Option) route.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.handler == nil {
		cfg.handler = defaultHandler
	}
	if cfg.stackSize <= 0 {
		cfg.stackSize = defaultStackSize
	}
	if cfg.prettyStack == nil {
		pretty := isTerminal(cfg.stackOut)
		cfg.prettyStack = &pretty
	}

	return route.MiddlewareFunc(func(req *message.Request, next route.Handler) (resp *message.Response, err error) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			cfg.report(req, rec)
			resp, err = cfg.handler(req, rec), nil
		}()
		return next.Handle(req)
	})
}

// report logs the panic and marks the active span.
func (cfg *config) report(req *message.Request, rec any) {
	span := trace.SpanFromContext(req.Context())
	span.AddEvent("exception", trace.WithAttributes(
		attribute.Bool("exception.escaped", true),
		attribute.String("exception.type", fmt.Sprintf("%T", rec)),
		attribute.String("exception.message", fmt.Sprint(rec)),
	))
	span.SetStatus(codes.Error, "panic recovered")

	var stack []byte
	if cfg.stackTrace {
		stack = debug.Stack()
		if len(stack) > cfg.stackSize {
			stack = stack[:cfg.stackSize]
		}
	}

	if cfg.logger == nil {
		return
	}

	args := []any{
		"panic", fmt.Sprint(rec),
		"method", req.Method(),
		"path", req.Path(),
	}
	if len(stack) > 0 {
		if *cfg.prettyStack {
			fmt.Fprintf(cfg.stackOut, "panic: %v\n\n%s\n", rec, stack)
		} else {
			args = append(args, "stack", string(stack))
		}
	}

	logging.FromContext(req.Context(), cfg.logger).Error("panic recovered", args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
