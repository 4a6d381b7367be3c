// Пакет telemetry — включаемый по конфигурации OTLP-трейсинг сервиса
// потребления потоков. Выключенный трейсинг не оставляет следов:
// bootstrap подставляет no-op shutdown.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// clampRatio — доля семплирования всегда в [0..1].
func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}

// SetupTracing поднимает OTLP/HTTP-экспорт спанов (без TLS), вероятностный
// семплер и глобальные пропагаторы W3C. Возвращает Shutdown провайдера —
// вызывается из cleanup-цепочки приложения.
func SetupTracing(
	ctx context.Context,
	serviceName, endpoint string,
	sampleRatio float64,
) (func(context.Context) error, error) {
	if endpoint == "" {
		endpoint = "localhost:4318"
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(clampRatio(sampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)

	return tp.Shutdown, nil
}
