package app

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gunvolt24/wb_streams/config"
	cachemem "github.com/Gunvolt24/wb_streams/internal/cache/memory"
	"github.com/Gunvolt24/wb_streams/internal/consumer"
	"github.com/Gunvolt24/wb_streams/internal/kafka"
	"github.com/Gunvolt24/wb_streams/internal/pipeline"
	"github.com/Gunvolt24/wb_streams/internal/ports"
	rest "github.com/Gunvolt24/wb_streams/internal/transport/http"
	"github.com/Gunvolt24/wb_streams/internal/usecase"
	"github.com/Gunvolt24/wb_streams/pkg/logger"
	"github.com/Gunvolt24/wb_streams/pkg/metrics"
	"github.com/Gunvolt24/wb_streams/pkg/telemetry"
	"github.com/Gunvolt24/wb_streams/pkg/validate"
	"github.com/gin-gonic/gin"
)

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение -> debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Сборка зависимостей доменного слоя.
	eventStore := cachemem.NewLRUStoreTTL(cfg.Store.Capacity, cfg.Store.TTL)
	eventValidator := validate.NewEventValidator()
	eventService := usecase.NewEventService(eventStore, logg, eventValidator)

	// Брокер-клиент и конвейер обработки потоков.
	brokerClient := kafka.NewClient(kafka.ClientConfig{
		Brokers:     cfg.Kafka.Brokers,
		GroupID:     cfg.Kafka.GroupID,
		StartOffset: cfg.Kafka.StartOffset,
	}, logg)

	processor := pipeline.NewProcessor(pipeline.Config{
		ProcessTimeout: cfg.Group.ProcessTimeout,
		SkipMalformed:  cfg.Group.SkipMalformed,
	}, eventService, logg)

	// Группа потребления: по воркеру на поток, аварийный останов — один на группу.
	group := consumer.NewGroup(consumer.GroupConfig{
		Partitions: cfg.Kafka.Partitions,
		Workers:    cfg.Group.Workers,
		Retry: consumer.RetryPolicy{
			InitialDelay: cfg.Retry.InitialDelay,
			MaxDelay:     cfg.Retry.MaxDelay,
			ResetWindow:  cfg.Retry.ResetWindow,
			MaxRetries:   cfg.Retry.MaxRetries,
		},
		ShutdownOnFatal:     cfg.Group.ShutdownOnFatal,
		ShutdownGracePeriod: cfg.Group.ShutdownGracePeriod,
	}, brokerClient, processor, logg)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(eventService, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, group, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := NewApp(logg, httpSrv, group, cfg.HTTP.GracefulTimeout, cfg.Kafka.CommitInterval)

	// При ShutdownOnFatal фатальная ошибка любого воркера гасит весь сервис;
	// группа остановится транзитивно из App.Run.
	if cfg.Group.ShutdownOnFatal {
		group.AttachHost(app)
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}
