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
	"fmt"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// instrumentationName identifies this library to OpenTelemetry.
const instrumentationName = "rivaas.dev/routeindex"

// MetricsProvider represents the available metrics providers.
type MetricsProvider string

const (
	// PrometheusProvider uses the Prometheus exporter for metrics (default).
	PrometheusProvider MetricsProvider = "prometheus"
	// OTLPProvider uses the OTLP HTTP exporter for metrics.
	OTLPProvider MetricsProvider = "otlp"
	// StdoutProvider uses the stdout exporter for metrics (development/testing).
	StdoutProvider MetricsProvider = "stdout"
)

// MetricsConfig holds OpenTelemetry metrics configuration for the index.
// The index is passive: it never starts servers or background exporters
// of its own beyond what the chosen SDK reader requires. The Prometheus
// provider uses a private registry; callers mount MetricsHandler
// wherever they serve metrics.
type MetricsConfig struct {
	enabled        bool
	serviceName    string
	serviceVersion string
	provider       MetricsProvider
	endpoint       string
	exportInterval time.Duration

	meter              metric.Meter
	meterProvider      metric.MeterProvider
	sdkProvider        *sdkmetric.MeterProvider // set when the config owns the provider
	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler

	lookupDuration metric.Float64Histogram
	lookupCount    metric.Int64Counter
	routeCount     metric.Int64UpDownCounter
	removalCount   metric.Int64Counter
}

// WithMetrics enables OpenTelemetry metrics with the Prometheus
// provider on a private registry (default). The scrape handler is
// available through Router.MetricsHandler.
func WithMetrics() Option {
	return func(c *config) {
		mc := defaultMetricsConfig()
		if err := mc.initializeProvider(); err != nil {
			panic(fmt.Sprintf("routeindex: failed to initialize metrics: %v", err))
		}
		c.metrics = mc
	}
}

// WithMetricsProviderOTLP enables metrics with the OTLP HTTP exporter.
// The endpoint defaults to http://localhost:4318 when omitted.
func WithMetricsProviderOTLP(endpoint ...string) Option {
	return func(c *config) {
		mc := defaultMetricsConfig()
		mc.provider = OTLPProvider
		mc.endpoint = "http://localhost:4318"
		if len(endpoint) > 0 && endpoint[0] != "" {
			mc.endpoint = endpoint[0]
		}
		if err := mc.initializeProvider(); err != nil {
			panic(fmt.Sprintf("routeindex: failed to initialize OTLP metrics: %v", err))
		}
		c.metrics = mc
	}
}

// WithMetricsProviderStdout enables metrics with the stdout exporter.
// Intended for development and testing.
func WithMetricsProviderStdout() Option {
	return func(c *config) {
		mc := defaultMetricsConfig()
		mc.provider = StdoutProvider
		if err := mc.initializeProvider(); err != nil {
			panic(fmt.Sprintf("routeindex: failed to initialize stdout metrics: %v", err))
		}
		c.metrics = mc
	}
}

// WithMeterProvider enables metrics on a caller-supplied MeterProvider.
// The caller keeps ownership of the provider's lifecycle; ShutdownMetrics
// becomes a no-op. This is the path tests use with a manual reader.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		mc := defaultMetricsConfig()
		mc.meterProvider = mp
		if err := mc.createInstruments(); err != nil {
			panic(fmt.Sprintf("routeindex: failed to create instruments: %v", err))
		}
		c.metrics = mc
	}
}

// WithMetricsServiceName sets the service name reported on metric attributes.
func WithMetricsServiceName(name string) Option {
	return func(c *config) {
		if c.metrics != nil {
			c.metrics.serviceName = name
		}
	}
}

func defaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		enabled:        true,
		serviceName:    "routeindex",
		serviceVersion: "1.0.0",
		provider:       PrometheusProvider,
		exportInterval: 30 * time.Second,
	}
}

// initializeProvider builds the SDK provider for the configured exporter
// and creates the instruments.
func (mc *MetricsConfig) initializeProvider() error {
	switch mc.provider {
	case PrometheusProvider:
		registry := promclient.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("create prometheus exporter: %w", err)
		}
		mc.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		mc.prometheusRegistry = registry
		mc.prometheusHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	case OTLPProvider:
		exporter, err := otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpointURL(mc.endpoint))
		if err != nil {
			return fmt.Errorf("create otlp exporter: %w", err)
		}
		mc.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(mc.exportInterval))))

	case StdoutProvider:
		exporter, err := stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("create stdout exporter: %w", err)
		}
		mc.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(mc.exportInterval))))

	default:
		return fmt.Errorf("unknown metrics provider %q", mc.provider)
	}

	mc.meterProvider = mc.sdkProvider
	return mc.createInstruments()
}

func (mc *MetricsConfig) createInstruments() error {
	mc.meter = mc.meterProvider.Meter(instrumentationName)

	var err error
	if mc.lookupDuration, err = mc.meter.Float64Histogram(
		"routeindex.lookup.duration",
		metric.WithDescription("Route lookup duration"),
		metric.WithUnit("ms"),
	); err != nil {
		return fmt.Errorf("create lookup duration histogram: %w", err)
	}
	if mc.lookupCount, err = mc.meter.Int64Counter(
		"routeindex.lookup.count",
		metric.WithDescription("Route lookups, partitioned by operation and outcome"),
	); err != nil {
		return fmt.Errorf("create lookup counter: %w", err)
	}
	if mc.routeCount, err = mc.meter.Int64UpDownCounter(
		"routeindex.routes",
		metric.WithDescription("Registered routes currently in the index"),
	); err != nil {
		return fmt.Errorf("create route counter: %w", err)
	}
	if mc.removalCount, err = mc.meter.Int64Counter(
		"routeindex.removals",
		metric.WithDescription("Route removals"),
	); err != nil {
		return fmt.Errorf("create removal counter: %w", err)
	}
	return nil
}

// MetricsHandler returns the Prometheus scrape handler for the index's
// private registry, or nil when metrics use another provider or are
// disabled. Callers mount it on their own mux:
//
//	http.Handle("/metrics", idx.MetricsHandler())
func (r *Router[T]) MetricsHandler() http.Handler {
	if r.metrics == nil {
		return nil
	}
	return r.metrics.prometheusHandler
}

// ShutdownMetrics flushes and stops the metrics provider the index
// created. It is a no-op for caller-supplied providers.
func (r *Router[T]) ShutdownMetrics(ctx context.Context) error {
	if r.metrics == nil || r.metrics.sdkProvider == nil {
		return nil
	}
	if err := r.metrics.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown meter provider: %w", err)
	}
	return nil
}

// recordLookup records one FindRoute/FindAllRoutes observation.
func (r *Router[T]) recordLookup(operation, method string, matched bool, elapsed time.Duration) {
	mc := r.metrics
	if mc == nil || !mc.enabled {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("service.name", mc.serviceName),
		attribute.String("operation", operation),
		attribute.String("method", methodLabel(method)),
		attribute.Bool("matched", matched),
	)
	ctx := context.Background()
	mc.lookupCount.Add(ctx, 1, attrs)
	mc.lookupDuration.Record(ctx, float64(elapsed.Nanoseconds())/1e6, attrs)
}

// recordRegistration tracks the registered-route gauge and removals.
func (r *Router[T]) recordRegistration(delta int64, replaced bool) {
	mc := r.metrics
	if mc == nil || !mc.enabled {
		return
	}
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("service.name", mc.serviceName))
	if delta < 0 {
		mc.removalCount.Add(ctx, 1, attrs)
	}
	if !replaced {
		mc.routeCount.Add(ctx, delta, attrs)
	}
}

// methodLabel keeps the ANY method readable on metric and span attributes.
func methodLabel(method string) string {
	if method == AnyMethod {
		return "ANY"
	}
	return method
}
