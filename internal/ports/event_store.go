package ports

import (
	"context"

	"github.com/Gunvolt24/wb_streams/internal/domain"
)

// EventStore — хранилище последних событий.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1);
// возврат копий сущности.
type EventStore interface {
	// Get — вернуть событие по ID; (event, true) при попадании,
	// (nil, false) при промахе/истечении TTL.
	Get(ctx context.Context, eventID string) (*domain.Event, bool)

	// Set — сохранить/обновить событие.
	Set(ctx context.Context, event *domain.Event) error

	// Recent — последние n событий, от новых к старым.
	Recent(ctx context.Context, n int) []*domain.Event
}
