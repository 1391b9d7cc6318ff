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


// Package basicauth provides HTTP Basic authentication middleware.
//
// Requests without valid credentials are answered with 401 Unauthorized and
// a WWW-Authenticate challenge; the rest of the pipeline does not run.
// Authenticated requests carry the user name as the "basicauth.user"
// request attribute.
//
//	admin := route.NewGroup("/admin", ...)
//	admin.AddMiddleware(basicauth.New(basicauth.WithUsers(map[string]string{
//	    "admin": "secret123",
//	})))
package basicauth
