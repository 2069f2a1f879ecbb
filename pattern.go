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
)

// segmentKind classifies one lexed pattern segment.
type segmentKind uint8

const (
	segStatic segmentKind = iota // literal segment, exact match
	segParam                     // :name, one non-empty segment
	segOptionalParam             // :name?, one segment or absent; final only
	segWildcard                  // *, one segment, anonymous
	segCatchAll                  // **:name, zero or more trailing segments; final only
)

// anonymousCatchAll is the sentinel name bound to a bare "**" segment.
// It is never exposed through the captured params view.
const anonymousCatchAll = "_"

// segment is one element of a lexed route pattern. For segStatic the
// literal field holds the segment text; for the parameter kinds it holds
// the parameter name (empty for the anonymous single wildcard).
type segment struct {
	kind    segmentKind
	literal string
}

// named reports whether the segment captures under a user-visible name.
func (s segment) named() bool {
	switch s.kind {
	case segParam, segOptionalParam:
		return true
	case segCatchAll:
		return s.literal != anonymousCatchAll
	default:
		return false
	}
}

// parsePattern lexes a route pattern into segments. A leading slash is
// tolerated and discarded; an empty remainder denotes the root pattern
// (nil segment list). A trailing empty segment is kept as an empty
// literal so that "/search/" registers a terminal distinct from "/search".
//
// Lexing fails with ErrInvalidPattern when an interior segment is empty,
// a parameter identifier is empty, or an optional parameter / catch-all
// appears before the final position.
func parsePattern(pattern string) ([]segment, error) {
	rest := strings.TrimPrefix(pattern, "/")
	if rest == "" {
		return nil, nil
	}

	parts := strings.Split(rest, "/")
	segments := make([]segment, 0, len(parts))

	for i, part := range parts {
		last := i == len(parts)-1

		if part == "" {
			if !last {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPattern, pattern)
			}
			// Trailing slash: an explicit empty terminal segment.
			segments = append(segments, segment{kind: segStatic})
			continue
		}

		seg, err := classifySegment(part)
		if err != nil {
			return nil, err
		}
		if !last && (seg.kind == segOptionalParam || seg.kind == segCatchAll) {
			return nil, fmt.Errorf("%w: %q must be the final segment of %q", ErrInvalidPattern, part, pattern)
		}

		segments = append(segments, seg)
	}

	return segments, nil
}

// classifySegment maps one non-empty pattern segment to its kind.
func classifySegment(s string) (segment, error) {
	switch {
	case s == "*":
		return segment{kind: segWildcard}, nil

	case strings.HasPrefix(s, "**"):
		if s == "**" {
			return segment{kind: segCatchAll, literal: anonymousCatchAll}, nil
		}
		name, ok := strings.CutPrefix(s, "**:")
		if !ok || name == "" {
			return segment{}, fmt.Errorf("%w: malformed catch-all %q", ErrInvalidPattern, s)
		}
		return segment{kind: segCatchAll, literal: name}, nil

	case strings.HasPrefix(s, ":"):
		name := s[1:]
		kind := segParam
		if trimmed, ok := strings.CutSuffix(name, "?"); ok {
			name = trimmed
			kind = segOptionalParam
		}
		if name == "" {
			return segment{}, fmt.Errorf("%w: empty parameter name in %q", ErrInvalidPattern, s)
		}
		return segment{kind: kind, literal: name}, nil

	default:
		return segment{kind: segStatic, literal: s}, nil
	}
}

// isStaticPattern reports whether every segment of the pattern is a literal.
// Purely static patterns are additionally indexed for exact-match lookup.
func isStaticPattern(segments []segment) bool {
	for _, s := range segments {
		if s.kind != segStatic {
			return false
		}
	}
	return true
}

// countNamedParams counts the user-visible capture names in a pattern.
func countNamedParams(segments []segment) int {
	count := 0
	for _, s := range segments {
		if s.named() {
			count++
		}
	}
	return count
}

// normalizePath strips the leading slash from a pattern or request path,
// producing the canonical key used by the static index.
func normalizePath(path string) string {
	return strings.TrimPrefix(path, "/")
}

// splitPath splits a request path into match segments. The empty segment
// produced by the leading slash is discarded; a trailing empty segment is
// kept so optional parameters can match the absent-value case.
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
