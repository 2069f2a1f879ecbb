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

// Package routeindex provides an in-process HTTP route index for Go.
//
// The index holds a table of (method, pattern) registrations and
// answers, for an incoming (method, path) pair, which pattern matches
// and which payload it carries, optionally extracting named parameters
// from the path. It is a library component meant to be embedded in HTTP
// servers and middleware pipelines; it does not parse requests, run
// handlers, or listen on anything.
//
// # Key Features
//
//   - Static, parameter, optional-parameter, wildcard, and catch-all
//     segments with fixed lookup priority (static > param > wildcard)
//   - Exact-match fast path for purely static routes, backed by a
//     bloom-filtered index
//   - Multi-match enumeration in priority order (FindAllRoutes)
//   - Insertion-ordered parameter capture, allocated only on request
//   - ANY-method registrations falling back behind concrete methods
//   - Safe concurrent lookups; mutations serialized by one lock
//   - Optional OpenTelemetry metrics (Prometheus, OTLP, stdout) and
//     lookup spans, plus diagnostic events for registration anomalies
//
// # Pattern Syntax
//
//   - /users/list          literal segments, matched exactly
//   - /users/:id           named parameter, one non-empty segment
//   - /search/:query?      optional parameter, final segment only
//   - /files/*             anonymous wildcard, one segment, not captured
//   - /assets/**:filepath  catch-all, zero or more trailing segments
//     joined by "/"; final segment only
//
// Methods are compared case-sensitively and are conventionally
// uppercase; the empty string (AnyMethod) matches any method at lookup
// time. WithMethodNormalization opts into uppercasing at the API
// boundary.
//
// # Constructor Pattern
//
// New returns *Router (no error) because construction cannot fail: the
// index is a passive data structure with no network I/O, file system
// access, or external dependencies. Options validate at application
// time and panic on invalid configuration, which is appropriate for
// errors that should be caught during development. All options use the
// "With" prefix.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "rivaas.dev/routeindex"
//	)
//
//	func main() {
//	    idx := routeindex.New[string]()
//
//	    idx.AddRoute("GET", "/users/:id", "user-detail")
//	    idx.AddRoute("GET", "/assets/**:filepath", "static-assets")
//
//	    match, err := idx.FindRoute("GET", "/users/123", true)
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println(*match.Payload, match.Params.Get("id"))
//	    // Output: user-detail 123
//	}
//
// # Concurrency
//
// One readers-writer lock guards the trie and the static index as a
// single logical state. FindRoute and FindAllRoutes take the shared
// side and run in parallel; AddRoute and RemoveRoute are exclusive.
// Every operation is synchronous and completes before returning; once
// a mutation returns, all subsequent lookups observe it.
//
// # Observability
//
// Metrics and spans are opt-in and off by default:
//
//	idx := routeindex.New[string](
//	    routeindex.WithMetrics(), // Prometheus on a private registry
//	    routeindex.WithTracing(),
//	)
//	http.Handle("/metrics", idx.MetricsHandler())
//
// Registration anomalies (parameter renames, payload replacement) are
// reported through WithDiagnostics.
package routeindex
