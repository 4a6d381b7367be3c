package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_streams/internal/ports"
)

// Проверка, что App может служить хостом для аварийного останова группы.
var _ ports.Host = (*App)(nil)

// App — собранное приложение и его внешние интерфейсы (HTTP, группа потребления).
type App struct {
	Logger     ports.Logger        // логгер
	HTTPServer *http.Server        // HTTP-сервер
	Group      ports.ConsumerGroup // группа потребления потоков

	gracefulTimeout time.Duration // время ожидания завершения HTTP-сервера
	commitInterval  time.Duration // период фонового коммита оффсетов

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewApp — конструктор приложения.
func NewApp(log ports.Logger, srv *http.Server, group ports.ConsumerGroup, gracefulTimeout, commitInterval time.Duration) *App {
	return &App{
		Logger:          log,
		HTTPServer:      srv,
		Group:           group,
		gracefulTimeout: gracefulTimeout,
		commitInterval:  commitInterval,
		stopCh:          make(chan struct{}),
	}
}

// Stop — остановка всего сервиса. Идемпотентна; безопасна для вызова из
// пути аварийной эскалации группы (Run среагирует и погасит всё штатно).
func (a *App) Stop() error {
	a.stopOnce.Do(func() { close(a.stopCh) })
	return nil
}

// Run — запускает группу потребления и HTTP-сервер; ждёт отмены контекста,
// вызова Stop или фоновой ошибки и останавливает их в обратном порядке.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск группы потребления. Ошибка открытия потоков — фатальна для старта.
	a.Logger.Infof(ctx, "consumer group starting")
	if err := a.Group.Start(ctx); err != nil {
		return err
	}

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Фоновый коммит оффсетов.
	commitCtx, stopCommits := context.WithCancel(context.Background())
	defer stopCommits()
	go a.commitLoop(commitCtx)

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case <-a.stopCh:
		a.Logger.Warnf(ctx, "emergency stop requested, starting graceful shutdown")
	case err := <-errCh:
		a.Logger.Warnf(ctx, "background error: %v", err)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка группы потребления (идемпотентно: после аварийной
	// эскалации повторный вызов просто дождётся воркеров).
	stopCommits()
	if err := a.Group.Stop(context.Background()); err != nil {
		a.Logger.Warnf(ctx, "consumer group stop error: %v", err)
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}

// commitLoop — периодический коммит оффсетов, пока сервис жив.
func (a *App) commitLoop(ctx context.Context) {
	interval := a.commitInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !a.Group.IsRunning() {
				continue
			}
			if err := a.Group.CommitOffsets(ctx); err != nil {
				a.Logger.Warnf(ctx, "commit offsets: %v", err)
			}
		}
	}
}
