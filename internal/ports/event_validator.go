package ports

import (
	"context"

	"github.com/Gunvolt24/wb_streams/internal/domain"
)

type EventValidator interface {
	Validate(ctx context.Context, event *domain.Event) error
}
