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

package routeindex

import "rivaas.dev/routeindex/internal/bloom"

const (
	// staticFilterSize is the bloom filter width in bits. False
	// positives grow with the route count; each one costs an extra map
	// probe, never a wrong answer.
	staticFilterSize   = 1024
	staticFilterHashes = 3

	// smallIndexThreshold is the route count below which lookups skip
	// the bloom filter and probe the map directly.
	smallIndexThreshold = 10

	// staticRebuildThreshold bounds filter staleness: bloom bits cannot
	// be cleared, so after this many removals the filter is rebuilt
	// from the surviving keys.
	staticRebuildThreshold = 64
)

// staticIndex is the exact-match table for purely static patterns,
// keyed by (method, normalized path). It duplicates what the trie
// stores for those patterns and is authoritative on the no-capture
// single-match fast path. The router's lock guards it together with
// the trie as one logical state.
type staticIndex[T any] struct {
	routes map[string]*entry[T]
	filter *bloom.Filter
	stale  int
}

func newStaticIndex[T any]() *staticIndex[T] {
	return &staticIndex[T]{
		routes: make(map[string]*entry[T], 16),
		filter: bloom.New(staticFilterSize, staticFilterHashes),
	}
}

// staticKey joins method and normalized path. Methods are arbitrary
// caller strings, so the separator is a byte that cannot appear in a
// path segment boundary.
func staticKey(method, path string) string {
	return method + "\x00" + path
}

func (idx *staticIndex[T]) add(method, path string, e *entry[T]) {
	key := staticKey(method, path)
	idx.routes[key] = e
	idx.filter.Add([]byte(key))
}

func (idx *staticIndex[T]) remove(method, path string) bool {
	key := staticKey(method, path)
	if _, ok := idx.routes[key]; !ok {
		return false
	}
	delete(idx.routes, key)

	idx.stale++
	if idx.stale >= staticRebuildThreshold {
		idx.rebuild()
	}
	return true
}

// rebuild replaces the bloom filter with one derived from the surviving
// keys. Stale filters stay correct (never a false negative) but degrade
// toward always probing the map.
func (idx *staticIndex[T]) rebuild() {
	idx.filter = bloom.New(staticFilterSize, staticFilterHashes)
	for key := range idx.routes {
		idx.filter.Add([]byte(key))
	}
	idx.stale = 0
}

// get returns the entry registered for exactly (method, path), or nil.
func (idx *staticIndex[T]) get(method, path string) *entry[T] {
	key := staticKey(method, path)
	if len(idx.routes) >= smallIndexThreshold && !idx.filter.Test([]byte(key)) {
		return nil
	}
	return idx.routes[key]
}
