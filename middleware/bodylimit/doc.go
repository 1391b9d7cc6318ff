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


// Package bodylimit provides middleware rejecting request bodies above a
// configured size with 413 Request Entity Too Large.
//
//	uploads.AddMiddleware(bodylimit.New(bodylimit.WithMaxSize(10 << 20)))
//
// Both the declared Content-Length and the buffered body are checked. The
// middleware runs after the router has read the body, so it sets per-route
// limits below the router-wide cap; memory use is bounded by
// router.WithMaxBodySize, which stops reading at the cap.
package bodylimit
