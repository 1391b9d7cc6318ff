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


package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
)

// redacted replaces the values of sensitive attributes.
const redacted = "***REDACTED***"

// Config configures a logger.
type Config struct {
	// Format selects the handler. Empty means JSONHandler.
	Format HandlerType
	// Level is one of debug, info, warn or error. Empty means info.
	Level string
	// Output receives log lines. Nil means os.Stdout.
	Output io.Writer
	// AddSource includes the caller's file and line.
	AddSource bool

	// Service information added to every entry when set.
	ServiceName    string
	ServiceVersion string
	Environment    string
}

// New creates a logger from cfg.
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   cfg.AddSource,
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	switch cfg.Format {
	case JSONHandler, "":
		handler = slog.NewJSONHandler(out, opts)
	case TextHandler:
		handler = slog.NewTextHandler(out, opts)
	default:
		return nil, fmt.Errorf("invalid configuration: %w: %s", ErrInvalidHandler, cfg.Format)
	}

	logger := slog.New(handler)

	var attrs []any
	if cfg.ServiceName != "" {
		attrs = append(attrs, "service", cfg.ServiceName)
	}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, "version", cfg.ServiceVersion)
	}
	if cfg.Environment != "" {
		attrs = append(attrs, "env", cfg.Environment)
	}
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}

	return logger, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg Config) *slog.Logger {
	l, err := New(cfg)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}
	return l
}

// ParseLevel parses a level name case-insensitively. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

func redact(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case "password", "token", "secret", "api_key", "authorization":
		return slog.String(a.Key, redacted)
	}
	return a
}
