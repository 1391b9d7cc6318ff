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


package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/jahau/router/message"
	"github.com/jahau/router/route"
)

const (
	encodingBrotli = "br"
	encodingGzip   = "gzip"

	defaultMinSize = 1024
)

var defaultContentTypes = []string{
	"text/",
	"application/json",
	"application/javascript",
	"application/xml",
	"application/xhtml+xml",
	"image/svg+xml",
}

type config struct {
	gzipLevel    int
	brotliLevel  int
	enableGzip   bool
	enableBrotli bool
	minSize      int
	excludePaths map[string]struct{}
	contentTypes []string
}

// New returns response compression middleware.
func New(opts ...Option) route.Middleware {
	cfg := &config{
		gzipLevel:    gzip.DefaultCompression,
		brotliLevel:  brotli.DefaultCompression,
		enableGzip:   true,
		enableBrotli: true,
		minSize:      defaultMinSize,
		excludePaths: make(map[string]struct{}),
		contentTypes: defaultContentTypes,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return route.MiddlewareFunc(func(req *message.Request, next route.Handler) (*message.Response, error) {
		resp, err := next.Handle(req)
		if err != nil || resp == nil {
			return resp, err
		}
		if _, skip := cfg.excludePaths[req.Path()]; skip {
			return resp, nil
		}
		if !cfg.compressible(resp) {
			return resp, nil
		}

		encoding := cfg.negotiate(req.HeaderLine("Accept-Encoding"))
		if encoding == "" {
			return resp.WithAddedHeader("Vary", "Accept-Encoding"), nil
		}

		body, err := cfg.compress(encoding, resp.Body())
		if err != nil {
			return nil, fmt.Errorf("compression: %s: %w", encoding, err)
		}

		return resp.
			WithBody(body).
			WithHeader("Content-Encoding", encoding).
			WithHeader("Content-Length", strconv.Itoa(len(body))).
			WithAddedHeader("Vary", "Accept-Encoding"), nil
	})
}

func (cfg *config) compressible(resp *message.Response) bool {
	if resp.BodyLen() < cfg.minSize {
		return false
	}
	if resp.HeaderLine("Content-Encoding") != "" {
		return false
	}
	ct := strings.ToLower(resp.HeaderLine("Content-Type"))
	for _, prefix := range cfg.contentTypes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

// negotiate picks brotli, then gzip, among the encodings accepted with a
// non-zero quality. "*" accepts both.
func (cfg *config) negotiate(acceptEncoding string) string {
	accepted := make(map[string]bool)
	for _, part := range strings.Split(acceptEncoding, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
		accepted[name] = q > 0
	}

	wildcard := accepted["*"]
	if cfg.enableBrotli {
		if ok, listed := accepted[encodingBrotli]; ok || (!listed && wildcard) {
			return encodingBrotli
		}
	}
	if cfg.enableGzip {
		if ok, listed := accepted[encodingGzip]; ok || (!listed && wildcard) {
			return encodingGzip
		}
	}
	return ""
}

func (cfg *config) compress(encoding string, body []byte) ([]byte, error) {
	var buf bytes.Buffer

	switch encoding {
	case encodingBrotli:
		w := brotli.NewWriterLevel(&buf, cfg.brotliLevel)
		if _, err := w.Write(body); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case encodingGzip:
		w, err := gzip.NewWriterLevel(&buf, cfg.gzipLevel)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(body); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	return buf.Bytes(), nil
}
