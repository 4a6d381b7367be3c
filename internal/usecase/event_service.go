package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_streams/internal/domain"
	"github.com/Gunvolt24/wb_streams/internal/ports"
	"github.com/Gunvolt24/wb_streams/pkg/validate"
)

// Проверка портов приложения.
var (
	_ ports.EventHandler     = (*EventService)(nil)
	_ ports.EventReadService = (*EventService)(nil)
)

// EventService — прикладная логика работы с событиями (без знаний о транспорте).
type EventService struct {
	store     ports.EventStore     // прямой доступ к хранилищу
	log       ports.Logger         // прямой доступ к логгеру
	validator ports.EventValidator // прямой доступ к валидатору
}

// NewEventService — DI-конструктор.
func NewEventService(store ports.EventStore, log ports.Logger, validator ports.EventValidator) *EventService {
	return &EventService{
		store:     store,
		log:       log,
		validator: validator,
	}
}

// HandleEvent — обработать событие, пришедшее из потока (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields) -> отлавливаем незадокументированные
//     поля; ошибки парсинга помечаются validate.ErrInvalidEvent, чтобы конвейер
//     мог пропустить мусорное сообщение, не роняя поток;
//  2. доменная валидация (вернёт validate.ErrInvalidEvent при проблемах);
//  3. запись в хранилище последних событий.
func (s *EventService) HandleEvent(ctx context.Context, topic string, raw []byte) error {
	// Строгое декодирование: запрещаем неизвестные поля.
	var event domain.Event
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&event); err != nil {
		s.log.Warnf(ctx, "invalid json topic=%s err=%v", topic, err)
		return fmt.Errorf("invalid json: %w: %w", validate.ErrInvalidEvent, err)
	}

	// Убеждаемся, что после объекта нет лишних данных.
	if err := dec.Decode(new(struct{})); err != io.EOF {
		s.log.Warnf(ctx, "invalid json: trailing data topic=%s", topic)
		return fmt.Errorf("invalid json: trailing data: %w", validate.ErrInvalidEvent)
	}

	// Доменная валидация (обязательные поля, корректность полезной нагрузки).
	if err := s.validator.Validate(ctx, &event); err != nil {
		s.log.Warnf(ctx, "validation failed event_id=%s err=%v", event.EventID, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.store.Set(ctx, &event); err != nil {
		s.log.Errorf(ctx, "store.Set failed event_id=%s err=%v", event.EventID, err)
		return fmt.Errorf("failed to store event: %w", err)
	}

	s.log.Infof(ctx, "event stored id=%s source=%s type=%s", event.EventID, event.Source, event.Type)
	return nil
}

// GetEvent — получить событие по ID из хранилища.
// Возвращает (*Event, nil) или (nil, nil), если записи нет.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	if event, found := s.store.Get(ctx, eventID); found {
		return event, nil
	}
	return nil, nil
}

// RecentEvents — последние события, опционально отфильтрованные по source.
func (s *EventService) RecentEvents(ctx context.Context, source string, limit int) ([]*domain.Event, error) {
	if limit <= 0 {
		limit = 20
	}

	recent := s.store.Recent(ctx, limit)
	if source == "" {
		return recent, nil
	}

	filtered := make([]*domain.Event, 0, len(recent))
	for _, e := range recent {
		if e.Source == source {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
