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


// Package message provides the immutable request and response values that flow
// through route handlers and middleware.
//
// Both types follow a getter/wither contract: getters never expose internal
// state for mutation and every With* method returns a new value.
//
//	req := message.NewRequest(http.MethodGet, "/users/42", nil).
//	    WithAttribute("tenant", "acme")
//	resp := message.Text(http.StatusOK, "hello").WithHeader("X-Trace", "1")
package message
