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
	"errors"
	"fmt"

	"github.com/jahau/router/compiler"
)

var (
	// ErrInvalidArgument is the root of all route construction errors.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidMethod indicates an unsupported HTTP method.
	ErrInvalidMethod = fmt.Errorf("%w: unsupported method", ErrInvalidArgument)

	// ErrEmptyName indicates an empty route name.
	ErrEmptyName = fmt.Errorf("%w: empty route name", ErrInvalidArgument)

	// ErrEmptyPattern indicates an empty route pattern.
	ErrEmptyPattern = compiler.ErrEmptyPattern

	// ErrInvalidPattern indicates a malformed route pattern.
	ErrInvalidPattern = compiler.ErrInvalidPattern

	// ErrGroupSealed indicates a modification of a group after the routing
	// table was compiled.
	ErrGroupSealed = errors.New("group is sealed")

	// ErrGroupCycle indicates that adding a group would make it its own
	// ancestor.
	ErrGroupCycle = errors.New("group cycle")
)
