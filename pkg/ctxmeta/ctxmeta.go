// Пакет ctxmeta — нейтральный слой для работы с метаданными,
// которые прокидываются через context.Context (request_id, topic, trace_id и т.д.).
// Идея: транспорт, движок потребления и логгер зависят от небольшого общего
// пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyTopic     ctxKey = "topic"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTopic кладёт тему потока в контекст (если пусто — ничего не делает).
func WithTopic(ctx context.Context, topic string) context.Context {
	if ctx == nil || topic == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyTopic, topic)
}

// TopicFromContext достаёт тему потока из контекста.
func TopicFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyTopic).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
