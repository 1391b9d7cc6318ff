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

// BloomFilter answers "definitely not present" for static route lookups.
//
// Elements are pre-hashed by the caller. The k bit positions are derived by
// double hashing: h1 + i*h2, where h2 is a remix of the base hash.
type BloomFilter struct {
	bits      []uint64
	size      uint64
	numHashes uint64
}

// NewBloomFilter creates a bloom filter with size bits and numHashFuncs hash
// functions. A zero size is raised to 64 bits and fewer than one hash
// function is raised to one.
func NewBloomFilter(size uint64, numHashFuncs int) *BloomFilter {
	if size == 0 {
		size = 64
	}
	if numHashFuncs < 1 {
		numHashFuncs = 1
	}

	return &BloomFilter{
		bits: make([]uint64, (size+63)/64),
		size: size,
		//nolint:gosec // G115: numHashFuncs is positive
		numHashes: uint64(numHashFuncs),
	}
}

// secondHash remixes the base hash with the splitmix64 finalizer. The result
// is odd so that consecutive positions never collapse onto one bit.
func secondHash(baseHash uint64) uint64 {
	z := baseHash + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return (z ^ (z >> 31)) | 1
}

// Add records a pre-hashed element.
func (bf *BloomFilter) Add(baseHash uint64) {
	h2 := secondHash(baseHash)
	for i := range bf.numHashes {
		pos := (baseHash + i*h2) % bf.size
		bf.bits[pos/64] |= 1 << (pos % 64)
	}
}

// Test reports whether the element may be present. False is exact.
func (bf *BloomFilter) Test(baseHash uint64) bool {
	h2 := secondHash(baseHash)
	for i := range bf.numHashes {
		pos := (baseHash + i*h2) % bf.size
		if bf.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}
