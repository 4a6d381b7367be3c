package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/wb_streams/internal/domain"
	"github.com/Gunvolt24/wb_streams/internal/ports/mocks"
	"github.com/Gunvolt24/wb_streams/internal/usecase"
	"github.com/Gunvolt24/wb_streams/pkg/validate"
	"github.com/golang/mock/gomock"
)

const eventID = "evt-1"

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

const validEventJSON = `{
	"event_id": "evt-1",
	"source": "billing",
	"type": "invoice.paid",
	"data": {"amount": 100},
	"created_at": "2025-03-01T10:00:00Z"
}`

func TestHandleEvent_OK(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockEventStore(ctrl)
	validator := mocks.NewMockEventValidator(ctrl)

	gomock.InOrder(
		validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil),
		store.EXPECT().Set(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *domain.Event) error {
				if e.EventID != eventID || e.Source != "billing" || e.Type != "invoice.paid" {
					t.Errorf("декодированное событие искажено: %+v", e)
				}
				return nil
			}),
	)

	svc := usecase.NewEventService(store, noopLogger{}, validator)

	if err := svc.HandleEvent(context.Background(), "events", []byte(validEventJSON)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
}

func TestHandleEvent_InvalidJson(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockEventStore(ctrl)
	validator := mocks.NewMockEventValidator(ctrl)

	svc := usecase.NewEventService(store, noopLogger{}, validator)

	err := svc.HandleEvent(context.Background(), "events", []byte("{"))
	if err == nil || !strings.Contains(err.Error(), "invalid json") {
		t.Fatalf("ожидали ошибку парсинга, получили %v", err)
	}
	// мусор должен распознаваться как невалидное событие (skip-политика конвейера)
	if !errors.Is(err, validate.ErrInvalidEvent) {
		t.Fatalf("ошибка парсинга должна помечаться ErrInvalidEvent: %v", err)
	}
}

func TestHandleEvent_UnknownFieldRejected(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockEventStore(ctrl)
	validator := mocks.NewMockEventValidator(ctrl)

	svc := usecase.NewEventService(store, noopLogger{}, validator)

	raw := []byte(`{"event_id":"evt-1","bogus":1}`)
	err := svc.HandleEvent(context.Background(), "events", raw)
	if err == nil || !strings.Contains(err.Error(), "invalid json") {
		t.Fatalf("неизвестное поле должно отклоняться, получили %v", err)
	}
}

func TestHandleEvent_TrailingDataRejected(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockEventStore(ctrl)
	validator := mocks.NewMockEventValidator(ctrl)

	svc := usecase.NewEventService(store, noopLogger{}, validator)

	raw := []byte(`{"event_id":"evt-1"} {"event_id":"evt-2"}`)
	err := svc.HandleEvent(context.Background(), "events", raw)
	if err == nil || !strings.Contains(err.Error(), "trailing data") {
		t.Fatalf("хвост после объекта должен отклоняться, получили %v", err)
	}
	if !errors.Is(err, validate.ErrInvalidEvent) {
		t.Fatalf("хвост после объекта должен помечаться ErrInvalidEvent: %v", err)
	}
}

func TestHandleEvent_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockEventStore(ctrl)
	validator := mocks.NewMockEventValidator(ctrl)

	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).
		Return(validate.ErrInvalidEvent)

	svc := usecase.NewEventService(store, noopLogger{}, validator)

	err := svc.HandleEvent(context.Background(), "events", []byte(validEventJSON))
	if !errors.Is(err, validate.ErrInvalidEvent) {
		t.Fatalf("ошибка валидации должна сохраняться для errors.Is: %v", err)
	}
}

func TestHandleEvent_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockEventStore(ctrl)
	validator := mocks.NewMockEventValidator(ctrl)

	cause := errors.New("store full")
	gomock.InOrder(
		validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil),
		store.EXPECT().Set(gomock.Any(), gomock.Any()).Return(cause),
	)

	svc := usecase.NewEventService(store, noopLogger{}, validator)

	err := svc.HandleEvent(context.Background(), "events", []byte(validEventJSON))
	if !errors.Is(err, cause) {
		t.Fatalf("ошибка хранилища должна всплывать: %v", err)
	}
}

func TestGetEvent_Hit(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockEventStore(ctrl)
	validator := mocks.NewMockEventValidator(ctrl)

	e := &domain.Event{EventID: eventID}
	store.EXPECT().Get(gomock.Any(), eventID).Return(e, true)

	svc := usecase.NewEventService(store, noopLogger{}, validator)

	got, err := svc.GetEvent(context.Background(), eventID)
	if err != nil || got == nil || got.EventID != eventID {
		t.Fatalf("ожидали попадание, got=%+v err=%v", got, err)
	}
}

func TestGetEvent_Miss(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockEventStore(ctrl)
	validator := mocks.NewMockEventValidator(ctrl)

	store.EXPECT().Get(gomock.Any(), eventID).Return(nil, false)

	svc := usecase.NewEventService(store, noopLogger{}, validator)

	got, err := svc.GetEvent(context.Background(), eventID)
	if err != nil || got != nil {
		t.Fatalf("промах должен вернуть (nil, nil), got=%+v err=%v", got, err)
	}
}

func TestRecentEvents_DefaultLimitAndFilter(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockEventStore(ctrl)
	validator := mocks.NewMockEventValidator(ctrl)

	recent := []*domain.Event{
		{EventID: "a", Source: "billing"},
		{EventID: "b", Source: "shipping"},
		{EventID: "c", Source: "billing"},
	}
	// Нулевой limit нормализуется до 20.
	store.EXPECT().Recent(gomock.Any(), 20).Return(recent)

	svc := usecase.NewEventService(store, noopLogger{}, validator)

	got, err := svc.RecentEvents(context.Background(), "billing", 0)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "a" || got[1].EventID != "c" {
		t.Fatalf("фильтр по source отработал неверно: %+v", got)
	}
}
