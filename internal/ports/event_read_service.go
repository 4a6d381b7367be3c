package ports

import (
	"context"

	"github.com/Gunvolt24/wb_streams/internal/domain"
)

// EventReadService — сервис чтения событий для HTTP-слоя.
type EventReadService interface {
	GetEvent(ctx context.Context, eventID string) (*domain.Event, error)
	RecentEvents(ctx context.Context, source string, limit int) ([]*domain.Event, error)
}
