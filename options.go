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

// Option configures a Router at construction time. Options are not
// generic over the payload type so call sites keep full inference:
//
//	idx := routeindex.New[string](routeindex.WithMethodNormalization())
type Option func(*config)

// config holds the payload-type-independent router configuration.
type config struct {
	normalizeMethods bool
	diagnostics      DiagnosticHandler
	metrics          *MetricsConfig
	tracing          *TracingConfig
}

// WithMethodNormalization uppercases method strings at the API boundary
// (registration, removal, and lookup). The core compares methods
// case-sensitively and does not normalize by default; callers that take
// methods straight from untrusted input can opt into normalization here.
//
// Example:
//
//	idx := routeindex.New[string](routeindex.WithMethodNormalization())
//	idx.AddRoute("get", "/home", "H") // stored under "GET"
func WithMethodNormalization() Option {
	return func(c *config) {
		c.normalizeMethods = true
	}
}

// WithDiagnostics sets a diagnostic handler for the route index.
//
// Diagnostic events are optional informational events that may indicate
// registration issues (parameter renames, payload replacement).
// The index functions correctly whether diagnostics are collected or not.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := routeindex.DiagnosticHandlerFunc(func(e routeindex.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	idx := routeindex.New[string](routeindex.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(c *config) {
		c.diagnostics = handler
	}
}
