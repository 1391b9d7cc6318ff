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


// Package problem writes router pipeline errors as RFC 9457 Problem Details.
//
// Handlers signal the status of an error by wrapping it with WithStatus or by
// returning an error type that implements StatusCoder:
//
//	func show(req *message.Request) (*message.Response, error) {
//	    return nil, problem.WithStatus(errUserNotFound, http.StatusNotFound)
//	}
//
//	r := router.MustNew(router.WithErrorHandler(problem.Handler(
//	    problem.WithBaseURL("https://api.example.com/problems"),
//	    problem.WithLogger(logger),
//	)))
//
// Errors without a status become 500 responses whose detail is withheld
// unless WithInternalDetails is set.
package problem
