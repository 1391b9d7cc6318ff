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


package accesslog

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jahau/router/logging"
	"github.com/jahau/router/message"
	"github.com/jahau/router/middleware/requestid"
	"github.com/jahau/router/route"
)

type config struct {
	logger        *slog.Logger
	excludePaths  map[string]struct{}
	slowThreshold time.Duration
	errorsOnly    bool
}

// New returns access log middleware. Without a logger it passes requests
// through untouched.
func New(opts ...Option) route.Middleware {
	cfg := &config{excludePaths: make(map[string]struct{})}
	for _, opt := range opts {
		opt(cfg)
	}

	return route.MiddlewareFunc(func(req *message.Request, next route.Handler) (*message.Response, error) {
		if cfg.logger == nil {
			return next.Handle(req)
		}
		if _, skip := cfg.excludePaths[req.Path()]; skip {
			return next.Handle(req)
		}

		start := time.Now()
		resp, err := next.Handle(req)
		cfg.log(req, resp, err, time.Since(start))

		return resp, err
	})
}

func (cfg *config) log(req *message.Request, resp *message.Response, err error, elapsed time.Duration) {
	status := http.StatusInternalServerError
	size := 0
	if err == nil && resp != nil {
		status = resp.StatusCode()
		if status == 0 {
			status = http.StatusOK
		}
		size = resp.BodyLen()
	}

	slow := cfg.slowThreshold > 0 && elapsed > cfg.slowThreshold
	failed := err != nil || status >= http.StatusBadRequest
	if cfg.errorsOnly && !failed && !slow {
		return
	}

	level := slog.LevelInfo
	switch {
	case err != nil || status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest || slow:
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("method", req.Method()),
		slog.String("path", req.Path()),
		slog.Int("status", status),
		slog.Int("bytes_sent", size),
		slog.Duration("duration", elapsed),
	}
	id := requestid.Get(req)
	if id == "" && resp != nil {
		id = resp.HeaderLine(requestid.DefaultHeader)
	}
	if id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	if ua := req.HeaderLine("User-Agent"); ua != "" {
		attrs = append(attrs, slog.String("user_agent", ua))
	}
	if slow {
		attrs = append(attrs, slog.Bool("slow", true))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	ctx := req.Context()
	logging.FromContext(ctx, cfg.logger).LogAttrs(ctx, level, "http request", attrs...)
}
