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


package compiler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptyPattern indicates that a route pattern is empty.
	ErrEmptyPattern = errors.New("empty route pattern")

	// ErrInvalidPattern indicates that a route pattern is malformed.
	ErrInvalidPattern = errors.New("invalid route pattern")
)

var paramNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// catchAllSuffix marks a parameter that captures the remainder of the path.
const catchAllSuffix = "..."

// Segment is one slash-separated part of a route pattern.
type Segment struct {
	Static     bool           // true for literal text
	Value      string         // literal text or parameter name
	Constraint *regexp.Regexp // optional, parameters only
	CatchAll   bool           // {name...}; always the last segment
}

// Pattern is a parsed route pattern.
//
// Placeholders use the {name} form and may carry a regular expression
// constraint ({id:[0-9]+}). A placeholder must occupy a whole segment.
// A trailing {name...} captures the rest of the path, slashes included.
type Pattern struct {
	raw      string
	segments []Segment
	params   []string
}

// ParsePattern parses and validates a route pattern.
func ParsePattern(pattern string) (*Pattern, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if pattern[0] != '/' {
		return nil, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPattern, pattern)
	}

	parts, err := splitSegments(pattern[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}

	p := &Pattern{
		raw:      pattern,
		segments: make([]Segment, 0, len(parts)),
	}
	seen := make(map[string]struct{}, len(parts))

	for i, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
		}
		if seg.CatchAll && i != len(parts)-1 {
			return nil, fmt.Errorf("%w: %q: catch-all {%s...} must be the last segment", ErrInvalidPattern, pattern, seg.Value)
		}
		if !seg.Static {
			if _, dup := seen[seg.Value]; dup {
				return nil, fmt.Errorf("%w: %q: duplicate parameter %q", ErrInvalidPattern, pattern, seg.Value)
			}
			seen[seg.Value] = struct{}{}
			p.params = append(p.params, seg.Value)
		}
		p.segments = append(p.segments, seg)
	}

	return p, nil
}

// splitSegments splits on '/' outside of braces so that constraints may
// use quantifiers such as {2}.
func splitSegments(s string) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced '}'")
			}
		case '/':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.New("unbalanced '{'")
	}
	return append(parts, s[start:]), nil
}

func parseSegment(part string) (Segment, error) {
	if !strings.ContainsAny(part, "{}") {
		return Segment{Static: true, Value: part}, nil
	}
	if part[0] != '{' || part[len(part)-1] != '}' {
		return Segment{}, fmt.Errorf("parameter in %q must occupy the whole segment", part)
	}

	inner := part[1 : len(part)-1]
	name, expr, hasExpr := strings.Cut(inner, ":")

	seg := Segment{}
	if strings.HasSuffix(name, catchAllSuffix) {
		if hasExpr {
			return Segment{}, fmt.Errorf("catch-all %q cannot carry a constraint", part)
		}
		name = strings.TrimSuffix(name, catchAllSuffix)
		seg.CatchAll = true
	}
	if !paramNameRegex.MatchString(name) {
		return Segment{}, fmt.Errorf("invalid parameter name %q", name)
	}
	seg.Value = name

	if hasExpr {
		if expr == "" {
			return Segment{}, fmt.Errorf("empty constraint for parameter %q", name)
		}
		re, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return Segment{}, fmt.Errorf("constraint for parameter %q: %w", name, err)
		}
		seg.Constraint = re
	}

	return seg, nil
}

// String returns the pattern as written.
func (p *Pattern) String() string {
	return p.raw
}

// Segments returns the parsed segments.
func (p *Pattern) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// Params returns parameter names in declaration order.
func (p *Pattern) Params() []string {
	return append([]string(nil), p.params...)
}

// IsStatic reports whether the pattern has no parameters.
func (p *Pattern) IsStatic() bool {
	return len(p.params) == 0
}

// staticCount is the number of literal segments, used for specificity.
func (p *Pattern) staticCount() int {
	n := 0
	for _, s := range p.segments {
		if s.Static {
			n++
		}
	}
	return n
}

func (p *Pattern) hasCatchAll() bool {
	return len(p.segments) > 0 && p.segments[len(p.segments)-1].CatchAll
}

// shape renders the pattern with parameter names erased. Two patterns with the
// same shape match exactly the same set of paths.
func (p *Pattern) shape() string {
	var sb strings.Builder
	for _, s := range p.segments {
		sb.WriteByte('/')
		switch {
		case s.Static:
			sb.WriteString(s.Value)
		case s.CatchAll:
			sb.WriteString("{...}")
		case s.Constraint != nil:
			sb.WriteString("{:" + s.Constraint.String() + "}")
		default:
			sb.WriteString("{}")
		}
	}
	return sb.String()
}

// match reports whether path matches and appends extracted parameters to params.
func (p *Pattern) match(path string, params []Param) ([]Param, bool) {
	if path == "" || path[0] != '/' {
		return params, false
	}
	parts := strings.Split(path[1:], "/")

	n := len(p.segments)
	if p.hasCatchAll() {
		if len(parts) < n {
			return params, false
		}
	} else if len(parts) != n {
		return params, false
	}

	start := len(params)
	for i, seg := range p.segments {
		switch {
		case seg.Static:
			if parts[i] != seg.Value {
				return params[:start], false
			}
		case seg.CatchAll:
			params = append(params, Param{Key: seg.Value, Value: strings.Join(parts[i:], "/")})
		default:
			v := parts[i]
			if v == "" {
				return params[:start], false
			}
			if seg.Constraint != nil && !seg.Constraint.MatchString(v) {
				return params[:start], false
			}
			params = append(params, Param{Key: seg.Value, Value: v})
		}
	}

	return params, true
}
