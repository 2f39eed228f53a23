package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Provider encapsulates the OpenTelemetry meter provider for one run.
type Provider struct {
	config        Config
	meterProvider *sdkmetric.MeterProvider
	metrics       *Metrics
	enabled       bool
}

// NewProvider creates an OpenTelemetry provider with the given
// configuration. When instrumentation is disabled the returned provider
// hands out a no-op metrics recorder and Shutdown does nothing.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	if !config.Enabled || config.MetricsExporter == ExporterNone {
		return &Provider{
			config:  config,
			metrics: &Metrics{}, // no-op recorder
		}, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout metrics exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	)
	otel.SetMeterProvider(mp)

	metrics, err := NewMetrics(mp.Meter(config.ServiceName))
	if err != nil {
		if shutdownErr := mp.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("%w (shutdown during cleanup: %w)", err, shutdownErr)
		}
		return nil, fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	return &Provider{
		config:        config,
		meterProvider: mp,
		metrics:       metrics,
		enabled:       true,
	}, nil
}

// Metrics returns the recorder for run counters. Never nil.
func (p *Provider) Metrics() *Metrics {
	return p.metrics
}

// Enabled reports whether metrics are being exported.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes pending metrics. Safe to call on a disabled provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
