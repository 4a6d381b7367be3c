//go:build integration

package testutil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gunvolt24/wb_streams/internal/domain"
	"github.com/google/uuid"
)

// MakeEvent — валидное уникальное событие для интеграционных тестов.
func MakeEvent() domain.Event {
	id := uuid.New().String()
	return domain.Event{
		EventID:   id,
		Source:    "itest",
		Type:      "itest.created",
		Data:      json.RawMessage(fmt.Sprintf(`{"payload":"%s"}`, id)),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
