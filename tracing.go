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
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds OpenTelemetry tracing configuration.
type TracingConfig struct {
	enabled bool
	tracer  trace.Tracer
}

// WithTracing enables a span per FindRoute call using the globally
// registered tracer provider. Lookups are synchronous and context-free,
// so spans are roots; the option exists for profiling the index in
// development, not for request-scoped tracing (the embedding server owns
// that).
func WithTracing() Option {
	return func(c *config) {
		c.tracing = &TracingConfig{
			enabled: true,
			tracer:  otel.Tracer(instrumentationName),
		}
	}
}

// WithTracerProvider enables lookup spans on a caller-supplied provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracing = &TracingConfig{
			enabled: true,
			tracer:  tp.Tracer(instrumentationName),
		}
	}
}

func (r *Router[T]) startLookupSpan(name, method, path string) trace.Span {
	tc := r.tracing
	if tc == nil || !tc.enabled {
		return nil
	}
	_, span := tc.tracer.Start(context.Background(), name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("http.request.method", methodLabel(method)),
			attribute.String("url.path", path),
		),
	)
	return span
}

func (r *Router[T]) endLookupSpan(span trace.Span, match *MatchedRoute[T]) {
	if span == nil {
		return
	}
	if match != nil {
		span.SetAttributes(attribute.String("http.route", match.Pattern))
	} else {
		span.SetStatus(codes.Error, "route not found")
	}
	span.End()
}
