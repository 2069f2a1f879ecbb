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

import "strings"

// Params is an insertion-ordered mapping from parameter name to the
// string captured from the path. Captured strings are freshly allocated
// per lookup and owned by the returned MatchedRoute.
type Params struct {
	keys   []string
	values []string
}

// Len returns the number of captured parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Get returns the value captured for name, or "" when absent.
func (p *Params) Get(name string) string {
	v, _ := p.Lookup(name)
	return v
}

// Has reports whether a value was captured for name.
func (p *Params) Has(name string) bool {
	_, ok := p.Lookup(name)
	return ok
}

// Lookup returns the value captured for name and whether it was present.
func (p *Params) Lookup(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	for i, k := range p.keys {
		if k == name {
			return p.values[i], true
		}
	}
	return "", false
}

// Keys returns the parameter names in capture order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Values returns the captured values in capture order.
func (p *Params) Values() []string {
	if p == nil {
		return nil
	}
	values := make([]string, len(p.values))
	copy(values, p.values)
	return values
}

// set binds value under name, keeping the original position when the
// name was already captured (repeated names in one pattern).
func (p *Params) set(name, value string) {
	for i, k := range p.keys {
		if k == name {
			p.values[i] = value
			return
		}
	}
	p.keys = append(p.keys, name)
	p.values = append(p.values, value)
}

// cloneWith returns a copy of p extended with one binding. Copying keeps
// sibling branches of the trie walk independent of each other.
func (p *Params) cloneWith(name, value string) *Params {
	c := &Params{}
	if p != nil {
		c.keys = append(make([]string, 0, len(p.keys)+1), p.keys...)
		c.values = append(make([]string, 0, len(p.values)+1), p.values...)
	}
	c.set(name, value)
	return c
}

// MatchedRoute is the result of a successful lookup.
type MatchedRoute[T any] struct {
	// Payload points at the value registered with the matched pattern.
	// It stays valid until the route is removed or replaced.
	Payload *T

	// Pattern is the pattern string the route was registered under.
	Pattern string

	// Params holds the captured parameters in pattern order. It is nil
	// (absent, not merely empty) when capture was not requested.
	Params *Params
}

// matcher carries the state of one trie walk. The walk enumerates
// candidate terminals in priority order — static child first, then the
// parameter child, then the catch-all — applied recursively, so the
// first match found is the overall best match.
type matcher[T any] struct {
	segments []string
	method   string
	capture  bool
	all      bool
	matches  []MatchedRoute[T]
}

// walk resolves segments[idx:] against n. Returns true once a match is
// found in single-match mode, which unwinds the recursion early.
func (m *matcher[T]) walk(n *node[T], idx int, params *Params) bool {
	if idx == len(m.segments) {
		if e := n.lookupMethod(m.method); e != nil {
			if m.emit(e, params) {
				return true
			}
		}
		// A catch-all child also matches the zero-segment remainder.
		if n.wildcard != nil {
			if e := n.wildcard.node.lookupMethod(m.method); e != nil {
				if m.emit(e, m.bindWildcard(params, n.wildcard.name, "")) {
					return true
				}
			}
		}
		return false
	}

	seg := m.segments[idx]

	if child := n.child(seg); child != nil {
		if m.walk(child, idx+1, params) {
			return true
		}
	}

	if p := n.param; p != nil {
		if seg != "" {
			next := params
			if m.capture && p.name != "" {
				next = params.cloneWith(p.name, seg)
			}
			if m.walk(p.node, idx+1, next) {
				return true
			}
		} else if p.optional && idx == len(m.segments)-1 {
			// Trailing empty segment: the optional value is absent, so
			// nothing is bound.
			if m.walk(p.node, idx+1, params) {
				return true
			}
		}
	}

	if w := n.wildcard; w != nil {
		if e := w.node.lookupMethod(m.method); e != nil {
			remainder := strings.Join(m.segments[idx:], "/")
			if m.emit(e, m.bindWildcard(params, w.name, remainder)) {
				return true
			}
		}
	}

	return false
}

// bindWildcard extends params with the catch-all capture, skipping the
// anonymous sentinel name.
func (m *matcher[T]) bindWildcard(params *Params, name, remainder string) *Params {
	if !m.capture || name == anonymousCatchAll {
		return params
	}
	return params.cloneWith(name, remainder)
}

// emit records a candidate terminal. Returns true when the walk should
// stop (single-match mode).
func (m *matcher[T]) emit(e *entry[T], params *Params) bool {
	match := MatchedRoute[T]{Payload: &e.payload, Pattern: e.pattern}
	if m.capture {
		if params == nil {
			params = &Params{}
		}
		match.Params = params
	}
	m.matches = append(m.matches, match)
	return !m.all
}
