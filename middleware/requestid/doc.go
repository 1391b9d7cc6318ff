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


// Package requestid provides middleware that assigns every request an ID.
//
// The ID is taken from the request header when the client sent one (and
// client IDs are allowed) or generated otherwise. It is stored in the
// request header, exposed as the "request_id" request attribute, and echoed
// on the response header.
//
//	api.AddMiddleware(requestid.New())
//	...
//	id := requestid.Get(req)
//
// IDs are UUID v7 by default; WithULID switches to 26 character ULIDs.
package requestid
