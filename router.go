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

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// AnyMethod is the reserved method key matching any concrete method.
// A route registered under AnyMethod answers lookups for every method;
// a concrete-method route at the same terminal wins over it.
const AnyMethod = ""

// Router is an in-process route index: a table of (method, pattern)
// registrations answering, for an incoming (method, path) pair, which
// pattern matches and which payload it carries, optionally extracting
// named parameters from the path.
//
// The trie, the static index, and the registration set form one logical
// state guarded by a single readers-writer lock: lookups proceed in
// parallel, mutations are exclusive. The lock is not reentrant.
// Once AddRoute returns, every subsequent lookup on any goroutine
// observes the addition; likewise for RemoveRoute.
//
// Payloads are owned by the router once inserted and handed out by
// pointer from lookups. The router is referenced by shared handle and
// is not copied after first use.
type Router[T any] struct {
	config

	mu     sync.RWMutex
	root   *node[T]
	static *staticIndex[T]
}

// New creates an empty route index and applies options. Construction
// cannot fail: the router is a passive data structure with no external
// dependencies, so options validate their input and panic on programmer
// error rather than returning errors.
func New[T any](opts ...Option) *Router[T] {
	r := &Router[T]{
		root:   &node[T]{},
		static: newStaticIndex[T](),
	}
	for _, opt := range opts {
		opt(&r.config)
	}
	return r
}

// AddRoute registers payload under (method, pattern), replacing any
// prior payload for the identical pair. The pattern is lexed first;
// nothing is mutated when lexing fails.
//
// Purely static patterns are stored in both the static index and the
// trie, so enumeration through FindAllRoutes agrees with FindRoute.
func (r *Router[T]) AddRoute(method, pattern string, payload T) error {
	segments, err := parsePattern(pattern)
	if err != nil {
		return err
	}
	method = r.normalizeMethod(method)

	e := &entry[T]{
		payload:    payload,
		pattern:    pattern,
		method:     method,
		static:     isStaticPattern(segments),
		paramCount: countNamedParams(segments),
	}

	r.mu.Lock()
	if e.static {
		r.static.add(method, normalizePath(pattern), e)
	}
	replaced, events := r.root.insert(segments, method, e, r.diagnostics != nil)
	r.mu.Unlock()

	if r.diagnostics != nil {
		if replaced {
			events = append(events, DiagnosticEvent{
				Kind:    DiagRouteReplaced,
				Message: "route payload replaced",
				Fields:  map[string]any{"method": method, "pattern": pattern},
			})
		}
		if last := len(segments) - 1; last >= 0 && segments[last].kind == segCatchAll && segments[last].literal == anonymousCatchAll {
			events = append(events, DiagnosticEvent{
				Kind:    DiagAnonymousCatchAll,
				Message: "anonymous catch-all registered; its capture is hidden from params",
				Fields:  map[string]any{"method": method, "pattern": pattern},
			})
		}
		for _, event := range events {
			r.diagnostics.OnDiagnostic(event)
		}
	}

	r.recordRegistration(1, replaced)
	return nil
}

// RemoveRoute deletes the registration for (method, pattern). The walk
// matches parameter segments by kind, not by name, so the pattern used
// for removal may spell parameter names differently than registration.
// Returns ErrRouteNotFound when no such registration exists.
func (r *Router[T]) RemoveRoute(method, pattern string) error {
	segments, err := parsePattern(pattern)
	if err != nil {
		return err
	}
	method = r.normalizeMethod(method)

	r.mu.Lock()
	if isStaticPattern(segments) {
		r.static.remove(method, normalizePath(pattern))
	}
	removed := r.root.remove(segments, method)
	r.mu.Unlock()

	if !removed {
		return fmt.Errorf("%w: %q %q", ErrRouteNotFound, method, pattern)
	}

	r.recordRegistration(-1, false)
	return nil
}

// FindRoute resolves (method, path) to the highest-priority matching
// route. Priority is static > param > wildcard, applied per segment,
// with a concrete method winning over AnyMethod at the same terminal.
//
// When captureParams is true the returned MatchedRoute carries an
// insertion-ordered params view; when false the view is absent and the
// lookup may answer purely static paths from the static index without
// walking the trie.
func (r *Router[T]) FindRoute(method, path string, captureParams bool) (*MatchedRoute[T], error) {
	method = r.normalizeMethod(method)
	start := time.Now()
	span := r.startLookupSpan("routeindex.find", method, path)

	r.mu.RLock()
	match := r.findLocked(method, path, captureParams)
	r.mu.RUnlock()

	r.endLookupSpan(span, match)
	r.recordLookup("find", method, match != nil, time.Since(start))

	if match == nil {
		return nil, fmt.Errorf("%w: no route for %q %q", ErrRouteNotFound, method, path)
	}
	return match, nil
}

func (r *Router[T]) findLocked(method, path string, captureParams bool) *MatchedRoute[T] {
	if !captureParams {
		normalized := normalizePath(path)
		if e := r.static.get(method, normalized); e != nil {
			return &MatchedRoute[T]{Payload: &e.payload, Pattern: e.pattern}
		}
		if method != AnyMethod {
			if e := r.static.get(AnyMethod, normalized); e != nil {
				return &MatchedRoute[T]{Payload: &e.payload, Pattern: e.pattern}
			}
		}
	}

	m := &matcher[T]{segments: splitPath(path), method: method, capture: captureParams}
	m.walk(r.root, 0, nil)
	if len(m.matches) == 0 {
		return nil
	}
	return &m.matches[0]
}

// FindAllRoutes returns every route matching (method, path), in the
// same priority order FindRoute resolves in: the first element, when
// any exists, is FindRoute's answer. The result is empty, never an
// error, when nothing matches.
func (r *Router[T]) FindAllRoutes(method, path string, captureParams bool) []MatchedRoute[T] {
	method = r.normalizeMethod(method)
	start := time.Now()

	m := &matcher[T]{segments: splitPath(path), method: method, capture: captureParams, all: true}
	r.mu.RLock()
	m.walk(r.root, 0, nil)
	r.mu.RUnlock()

	r.recordLookup("find_all", method, len(m.matches) > 0, time.Since(start))
	return m.matches
}

// Len returns the number of distinct registrations in the index.
func (r *Router[T]) Len() int {
	r.mu.RLock()
	entries := r.root.collectEntries(make(map[*entry[T]]struct{}), nil)
	r.mu.RUnlock()
	return len(entries)
}

func (r *Router[T]) normalizeMethod(method string) string {
	if r.normalizeMethods {
		return strings.ToUpper(method)
	}
	return method
}
