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

// Package bloom provides the probabilistic filter backing negative
// lookups in the static route index.
//
// A bloom filter answers "definitely not in the set" with certainty and
// "possibly in the set" with a bounded false-positive rate. Bits cannot
// be cleared on removal; callers that delete keys rebuild the filter
// from the surviving key set instead.
package bloom

import "hash/fnv"

// Filter is a fixed-size bloom filter over byte keys. It derives its
// hash family from a single FNV-1a base hash XORed with per-function
// seeds, so membership tests hash the key once.
type Filter struct {
	bits  []uint64
	size  uint64
	seeds []uint64
}

// New creates a filter with size bits and the given number of hash
// functions. Degenerate arguments are clamped to the smallest usable
// configuration.
func New(size uint64, hashFuncs int) *Filter {
	if size == 0 {
		size = 64
	}
	if hashFuncs < 1 {
		hashFuncs = 1
	}

	f := &Filter{
		bits:  make([]uint64, (size+63)/64),
		size:  size,
		seeds: make([]uint64, hashFuncs),
	}
	for i := range f.seeds {
		f.seeds[i] = uint64(i + 1)
	}
	return f
}

// Add marks key as present.
func (f *Filter) Add(key []byte) {
	base := baseHash(key)
	for _, seed := range f.seeds {
		pos := (base ^ seed) % f.size
		f.bits[pos/64] |= 1 << (pos % 64)
	}
}

// Test reports whether key may be present. A false result is definite;
// a true result must be confirmed against the authoritative map.
func (f *Filter) Test(key []byte) bool {
	base := baseHash(key)
	for _, seed := range f.seeds {
		pos := (base ^ seed) % f.size
		if f.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}

func baseHash(key []byte) uint64 {
	h := fnv.New64a()
	h.Write(key)
	return h.Sum64()
}
