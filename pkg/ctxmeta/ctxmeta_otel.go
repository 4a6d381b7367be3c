//go:build otel && !gopls

package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Сборка с тегом `otel`: идентификаторы берутся из активного спана,
// чтобы строки логов можно было связать с трейсом в бэкенде.

func activeSpanContext(ctx context.Context) (trace.SpanContext, bool) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	return sc, sc.IsValid()
}

func TraceIDFromContext(ctx context.Context) (string, bool) {
	sc, ok := activeSpanContext(ctx)
	if !ok {
		return "", false
	}
	return sc.TraceID().String(), true
}

func SpanIDFromContext(ctx context.Context) (string, bool) {
	sc, ok := activeSpanContext(ctx)
	if !ok {
		return "", false
	}
	return sc.SpanID().String(), true
}
