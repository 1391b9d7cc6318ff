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

// FNV-1a 64-bit constants. Hashing is done inline over method and path so a
// lookup never concatenates strings or allocates a hash.Hash.
const (
	fnvOffsetBasis = 14695981039346656037
	fnvPrime       = 1099511628211
)

// hashKey hashes method, a separating space and path.
func hashKey(method, path string) uint64 {
	hash := uint64(fnvOffsetBasis)
	for i := range len(method) {
		hash ^= uint64(method[i])
		hash *= fnvPrime
	}
	hash ^= uint64(' ')
	hash *= fnvPrime
	for i := range len(path) {
		hash ^= uint64(path[i])
		hash *= fnvPrime
	}
	return hash
}

// lookupStatic finds a static route. Callers hold the read lock.
func (rc *RouteCompiler) lookupStatic(method, path string) *CompiledRoute {
	if len(rc.staticRoutes) == 0 {
		return nil
	}

	hash := hashKey(method, path)

	// Small tables are cheaper to probe directly.
	if len(rc.staticRoutes) >= 10 && !rc.staticBloom.Test(hash) {
		return nil
	}

	route := rc.staticRoutes[hash]
	if route == nil || route.method != method || route.pattern.raw != path {
		return nil
	}
	return route
}
