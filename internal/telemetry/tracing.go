package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TracingConfig selects where spans are exported. Endpoint is an OTLP/HTTP
// collector host:port; spans are recorded but not exported when it is empty.
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Insecure       bool
}

// InitTracing installs a global tracer provider and returns its shutdown
// function.
func InitTracing(ctx context.Context, logger *zap.Logger, cfg TracingConfig) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.Endpoint != "" {
		exporterOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
		logger.Info("exporting traces",
			zap.String("endpoint", cfg.Endpoint),
			zap.String("op", "telemetry.InitTracing"),
		)
	} else {
		logger.Debug("no trace endpoint configured, spans will not be exported",
			zap.String("op", "telemetry.InitTracing"),
		)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Tracer returns the service tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
