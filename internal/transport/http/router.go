package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Gunvolt24/wb_streams/internal/ports"
	"github.com/Gunvolt24/wb_streams/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Liveness — минимальный контракт живости для health-чека
// (его реализует группа потребления).
type Liveness interface {
	IsRunning() bool
}

type Handler struct {
	service        ports.EventReadService
	log            ports.Logger
	handlerTimeout time.Duration
}

func NewHandler(service ports.EventReadService, log ports.Logger, handlerTimeout time.Duration) *Handler {
	if handlerTimeout <= 0 {
		handlerTimeout = 3 * time.Second
	}
	return &Handler{service: service, log: log, handlerTimeout: handlerTimeout}
}

func NewRouter(h *Handler, live Liveness, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/healthz", healthz(live))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/events/:id", h.getEventByID)
		api.GET("/events", h.listRecentEvents)
	}

	return r
}

// healthz — 200 пока группа потребления жива, 503 после остановки
// или фатальной ошибки любого воркера.
func healthz(live Liveness) gin.HandlerFunc {
	return func(c *gin.Context) {
		if live != nil && live.IsRunning() {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "stopped"})
	}
}

func (h *Handler) getEventByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.handlerTimeout)
	defer cancel()

	event, err := h.service.GetEvent(ctx, id)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "GetEvent failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) listRecentEvents(c *gin.Context) {
	source := c.Query("source")
	limit := httpx.ParseLimit(c, 20, 100)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.handlerTimeout)
	defer cancel()

	events, err := h.service.RecentEvents(ctx, source, limit)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "RecentEvents failed source=%s err=%v", source, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, events)
}
