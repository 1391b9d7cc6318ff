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


// Package config loads the settings of the routerdemo service.
//
// Settings are layered: built-in defaults, then an optional TOML or YAML file,
// then environment variables. An environment variable named
// ROUTERDEMO_SERVER_READ_TIMEOUT overrides the key server.read_timeout; the
// first segment after the prefix names the section.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
)

// EnvPrefix is the default environment variable prefix.
const EnvPrefix = "ROUTERDEMO_"

var (
	// ErrUnsupportedFormat is returned for file extensions other than
	// .toml, .yaml and .yml.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("invalid configuration")
)

// Settings holds the service configuration.
type Settings struct {
	Service ServiceSettings `config:"service"`
	Server  ServerSettings  `config:"server"`
	Log     LogSettings     `config:"log"`
	Tracing TracingSettings `config:"tracing"`
	Metrics MetricsSettings `config:"metrics"`
	Router  RouterSettings  `config:"router"`
	Auth    AuthSettings    `config:"auth"`
}

type ServiceSettings struct {
	Name        string `config:"name"`
	Version     string `config:"version"`
	Environment string `config:"environment"`
}

type ServerSettings struct {
	Addr            string        `config:"addr"`
	ReadTimeout     time.Duration `config:"read_timeout"`
	WriteTimeout    time.Duration `config:"write_timeout"`
	ShutdownTimeout time.Duration `config:"shutdown_timeout"`
	MaxBodySize     int64         `config:"max_body_size"`
}

type LogSettings struct {
	Format string `config:"format"`
	Level  string `config:"level"`
}

type TracingSettings struct {
	Provider   string  `config:"provider"`
	Endpoint   string  `config:"endpoint"`
	Insecure   bool    `config:"insecure"`
	SampleRate float64 `config:"sample_rate"`
}

type MetricsSettings struct {
	Provider       string `config:"provider"`
	Endpoint       string `config:"endpoint"`
	Path           string `config:"path"`
	RuntimeMetrics bool   `config:"runtime_metrics"`
}

type RouterSettings struct {
	// BloomFilterSize of zero sizes the filter from the route count.
	BloomFilterSize uint64 `config:"bloom_filter_size"`
}

type AuthSettings struct {
	Realm string            `config:"realm"`
	Users map[string]string `config:"users"`
}

func defaults() map[string]any {
	return map[string]any{
		"service": map[string]any{
			"name":        "routerdemo",
			"version":     "dev",
			"environment": "development",
		},
		"server": map[string]any{
			"addr":             ":8080",
			"read_timeout":     "10s",
			"write_timeout":    "10s",
			"shutdown_timeout": "15s",
			"max_body_size":    2 << 20,
		},
		"log": map[string]any{
			"format": "text",
			"level":  "info",
		},
		"tracing": map[string]any{
			"provider":    "noop",
			"sample_rate": 1.0,
		},
		"metrics": map[string]any{
			"provider": "prometheus",
			"path":     "/metrics",
		},
		"auth": map[string]any{
			"realm": "Restricted",
		},
	}
}

// Load builds Settings from defaults, the file at path (skipped when empty)
// and environment variables starting with EnvPrefix.
func Load(ctx context.Context, path string) (*Settings, error) {
	return load(ctx, path, EnvPrefix, os.Environ())
}

func load(ctx context.Context, path, prefix string, environ []string) (*Settings, error) {
	values := defaults()

	layers := make([]map[string]any, 0, 2)
	if path != "" {
		fileValues, err := readFile(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fileValues)
	}
	layers = append(layers, envValues(prefix, environ))

	for _, layer := range layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := mergo.Map(&values, normalizeMapKeys(layer), mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge configuration: %w", err)
		}
	}

	var s Settings
	if err := decode(values, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	values := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &values)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &values)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return values, nil
}

// envValues maps PREFIX_SECTION_KEY=value to {section: {key: value}}.
func envValues(prefix string, environ []string) map[string]any {
	values := make(map[string]any)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		section, key, ok := strings.Cut(strings.ToLower(rest), "_")
		if !ok || section == "" || key == "" {
			continue
		}

		m, _ := values[section].(map[string]any)
		if m == nil {
			m = make(map[string]any)
			values[section] = m
		}
		m[key] = value
	}
	return values
}

func normalizeMapKeys(m map[string]any) map[string]any {
	normalized := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeMapKeys(nested)
		}
		normalized[strings.ToLower(k)] = v
	}
	return normalized
}

func decode(values map[string]any, out *Settings) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			castHook,
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}

// castHook converts scalars between kinds, so that "0.5" from the
// environment and 1 from a TOML file both land in a float64 field.
func castHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == to.Kind() {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Float64:
		return cast.ToFloat64E(data)
	case reflect.Bool:
		return cast.ToBoolE(data)
	case reflect.Int64:
		if to == reflect.TypeFor[time.Duration]() {
			return data, nil
		}
		return cast.ToInt64E(data)
	case reflect.Uint64:
		return cast.ToUint64E(data)
	case reflect.String:
		return cast.ToStringE(data)
	case reflect.Map:
		if to.Key().Kind() == reflect.String && to.Elem().Kind() == reflect.String {
			return cast.ToStringMapStringE(data)
		}
	}
	return data, nil
}

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	switch {
	case s.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is required", ErrInvalid)
	case s.Server.ReadTimeout < 0, s.Server.WriteTimeout < 0, s.Server.ShutdownTimeout < 0:
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalid)
	case s.Server.MaxBodySize <= 0:
		return fmt.Errorf("%w: server.max_body_size must be positive", ErrInvalid)
	case s.Tracing.SampleRate < 0 || s.Tracing.SampleRate > 1:
		return fmt.Errorf("%w: tracing.sample_rate must be between 0 and 1, got %v", ErrInvalid, s.Tracing.SampleRate)
	case s.Metrics.Path != "" && !strings.HasPrefix(s.Metrics.Path, "/"):
		return fmt.Errorf("%w: metrics.path must start with '/'", ErrInvalid)
	}
	for user, password := range s.Auth.Users {
		if user == "" || password == "" {
			return fmt.Errorf("%w: auth.users entries need a user name and a password", ErrInvalid)
		}
	}
	return nil
}
