package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/wb_streams/internal/domain"
	"github.com/Gunvolt24/wb_streams/internal/ports"
)

// Проверка, что EventValidator удовлетворяет интерфейсу EventValidator.
var _ ports.EventValidator = (*EventValidator)(nil)

// ErrInvalidEvent — базовая (sentinel error) ошибка валидации события.
var ErrInvalidEvent = errors.New("event validation failed")

// EventValidator — структурная валидация события.
// Возвращает ErrInvalidEvent (с обёрнутой причиной) при любой проблеме.
type EventValidator struct{}

// NewEventValidator — конструктор EventValidator.
func NewEventValidator() *EventValidator { return &EventValidator{} }

// Validate — проверяет корректность полей события.
func (v *EventValidator) Validate(_ context.Context, event *domain.Event) error {
	if event == nil {
		return fmt.Errorf("%w: событие не может быть nil", ErrInvalidEvent)
	}
	if event.EventID == "" {
		return fmt.Errorf("%w: event_id обязателен", ErrInvalidEvent)
	}
	if event.Source == "" {
		return fmt.Errorf("%w: source обязателен", ErrInvalidEvent)
	}
	if event.Type == "" {
		return fmt.Errorf("%w: type обязателен", ErrInvalidEvent)
	}
	if event.CreatedAt.IsZero() || event.CreatedAt.Before(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)) {
		return fmt.Errorf("%w: created_at некорректен", ErrInvalidEvent)
	}
	return v.validateData(event.Data)
}

// validateData — полезная нагрузка обязана быть валидным непустым JSON.
func (v *EventValidator) validateData(data json.RawMessage) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: data не должен быть пустым", ErrInvalidEvent)
	}
	if !json.Valid(data) {
		return fmt.Errorf("%w: data не является корректным JSON", ErrInvalidEvent)
	}
	return nil
}
