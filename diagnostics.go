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

// DiagnosticEvent represents a route index diagnostic or anomaly.
// These are informational events that may indicate registration issues.
//
// Diagnostic events are optional - the index functions correctly whether
// they are collected or not. They provide visibility into edge cases for
// observability systems.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagParamNameOverwritten is emitted when a pattern registers a
	// parameter name at a trie slot that already carries a different
	// name. The later name wins; earlier patterns through the same slot
	// capture under the new name from then on.
	DiagParamNameOverwritten DiagnosticKind = "param_name_overwritten"

	// DiagRouteReplaced is emitted when a registration replaces the
	// payload of an identical (method, pattern).
	DiagRouteReplaced DiagnosticKind = "route_replaced"

	// DiagAnonymousCatchAll is emitted when a bare "**" catch-all is
	// registered. Its capture is hidden from the params view.
	DiagAnonymousCatchAll DiagnosticKind = "anonymous_catch_all"
)

// DiagnosticHandler receives diagnostic events from the route index.
// Implementations may log, emit metrics, trace events, or ignore them.
//
// This interface is optional - if not provided, diagnostics are silently
// dropped. Handlers are invoked after the index's lock is released and
// must be safe for concurrent use.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := routeindex.DiagnosticHandlerFunc(func(e routeindex.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	idx := routeindex.New[http.Handler](routeindex.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
