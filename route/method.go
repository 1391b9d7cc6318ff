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
	"strings"

	"github.com/jahau/router/compiler"
)

// Method is an HTTP method a route responds to.
type Method string

// Supported methods. Any matches every method that has no route of its own.
const (
	GET     Method = "GET"
	POST    Method = "POST"
	PUT     Method = "PUT"
	PATCH   Method = "PATCH"
	DELETE  Method = "DELETE"
	HEAD    Method = "HEAD"
	OPTIONS Method = "OPTIONS"
	Any     Method = compiler.AnyMethod
)

// ParseMethod parses a method name case-insensitively. "*" and "ANY" yield Any.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS, Any:
		return m, nil
	case "ANY":
		return Any, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

// String returns the method name.
func (m Method) String() string {
	return string(m)
}
