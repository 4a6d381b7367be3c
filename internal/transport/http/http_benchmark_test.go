//go:build !integration

package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/wb_streams/internal/domain"
)

// --- Бенчмарки ---

// Базовый бенч: GetEvent (валидное событие) — сравниваем LEAN vs FULL пайплайн
func BenchmarkHTTP_GetEvent(b *testing.B) {
	log := nopLogger{}
	ev := benchEvent("bench-evt-1")
	h := NewHandler(svcOne{e: ev}, log, 2*time.Second)

	lean := makeLeanRouter(h)
	full := makeFullRouter(h)

	b.Run("lean/no-mw", func(b *testing.B) {
		benchServeGET(b, lean, "/events/"+ev.EventID)
	})
	b.Run("full/prod-mw", func(b *testing.B) {
		benchServeGET(b, full, "/api/v1/events/"+ev.EventID)
	})
}

// Потолок без маршалинга: то же событие, но заранее закодированный JSON.
// Показывает, сколько «ест» encoding/json в вашем хендлере.
func BenchmarkHTTP_GetEvent_PreMarshaledBytes(b *testing.B) {
	ev := benchEvent("bench-evt-1")
	raw, _ := json.Marshal(ev)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	// отдельный эндпоинт, который просто отдаёт готовый []byte
	r.GET("/events/:id", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", raw)
	})

	benchServeGET(b, r, "/events/"+ev.EventID)
}

// Лента последних событий: 10/50/100 — измеряем рост аллокаций и времени
func BenchmarkHTTP_ListRecentEvents(b *testing.B) {
	log := nopLogger{}

	for _, n := range []int{10, 50, 100} {
		b.Run("N="+strconv.Itoa(n), func(b *testing.B) {
			// готовим выборку из n событий
			list := make([]*domain.Event, 0, n)
			for i := 0; i < n; i++ {
				list = append(list, benchEvent("bench-evt-"+strconv.Itoa(i)))
			}
			h := NewHandler(svcList{list: list}, log, 2*time.Second)

			lean := makeLeanRouter(h)
			benchServeGET(b, lean, "/events?limit="+strconv.Itoa(n))
		})
	}
}

// Ошибочный путь (404): "цена" роутера и 404-хендлера
func BenchmarkHTTP_404(b *testing.B) {
	log := nopLogger{}
	ev := benchEvent("bench-evt-1")
	h := NewHandler(svcOne{e: ev}, log, 2*time.Second)
	r := makeLeanRouter(h)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, "/nope", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusNotFound {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}

// --- nopLogger — логгер, который не делает ничего. ---

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// --- Стабы ---

type svcOne struct{ e *domain.Event }

func (s svcOne) GetEvent(context.Context, string) (*domain.Event, error) { return s.e, nil }
func (s svcOne) RecentEvents(context.Context, string, int) ([]*domain.Event, error) {
	return []*domain.Event{s.e}, nil
}

// для ленты: заранее подготовленная выборка N элементов (без аллокаций на каждом вызове)
type svcList struct{ list []*domain.Event }

func (s svcList) GetEvent(context.Context, string) (*domain.Event, error) { return s.list[0], nil }
func (s svcList) RecentEvents(context.Context, string, int) ([]*domain.Event, error) {
	return s.list, nil
}

// --- функции-помощники ---

func benchEvent(id string) *domain.Event {
	return &domain.Event{
		EventID:   id,
		Source:    "bench",
		Type:      "bench.created",
		Data:      json.RawMessage(`{"payload":"` + id + `"}`),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/otel/logger — получаем меньшую аллокацию
	r.GET("/events/:id", h.getEventByID)
	r.GET("/events", h.listRecentEvents)
	return r
}

type alwaysLive struct{}

func (alwaysLive) IsRunning() bool { return true }

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	// prod пайплайн из NewRouter
	return NewRouter(h, alwaysLive{}, "")
}

func benchServeGET(b *testing.B, r *gin.Engine, path string) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	// Параллельный режим ближе к реальности без TCP
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			// вычитываем тело
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusOK {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
