package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_streams/internal/domain"
	"github.com/Gunvolt24/wb_streams/internal/ports"
)

// ValidateEventFromJSON — валидация события из JSON.
func ValidateEventFromJSON(ctx context.Context, validator ports.EventValidator, raw []byte) (*domain.Event, error) {
	var event domain.Event
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&event); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if err := validator.Validate(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
