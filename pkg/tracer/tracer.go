package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	otrace "go.opentelemetry.io/otel/trace"
)

const _serviceName = "tour"

var DefaultPropagator = propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

// Init exports spans of the named service to an OTLP/HTTP collector at
// endpoint. The returned func flushes pending spans and must be called
// before exit. Without Init every span is a no-op.
func Init(endpoint, service string) (func(context.Context) error, error) {
	if service == "" {
		service = _serviceName
	}

	headers := map[string]string{
		"content-type": "application/json",
	}

	exporter, err := otlptrace.New(
		context.Background(),
		otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithHeaders(headers),
			otlptracehttp.WithInsecure(),
		),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceNameKey.String(service),
			),
		),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(DefaultPropagator)

	return tracerProvider.Shutdown, nil
}

// Start opens a span on the global provider. The tracer is looked up on
// every call so spans started after Init are exported.
func Start(ctx context.Context, spanName string, opts ...otrace.SpanStartOption) (context.Context, otrace.Span) {
	return otel.Tracer(_serviceName).Start(ctx, spanName, opts...)
}

// ToMap serializes the span context of ctx, to be sent along a remote call.
func ToMap(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	DefaultPropagator.Inject(ctx, carrier)
	return carrier
}

// FromMap restores a span context received with a remote call.
func FromMap(ctx context.Context, m map[string]string) context.Context {
	return DefaultPropagator.Extract(ctx, propagation.MapCarrier(m))
}
