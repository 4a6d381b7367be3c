package app_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/wb_streams/internal/app"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// фейковая группа потребления
type fakeGroup struct {
	startCalls  int32
	stopCalls   int32
	commitCalls int32
	startErr    error
}

func (f *fakeGroup) Start(context.Context) error {
	atomic.AddInt32(&f.startCalls, 1)
	return f.startErr
}

func (f *fakeGroup) Stop(context.Context) error {
	atomic.AddInt32(&f.stopCalls, 1)
	return nil
}

func (f *fakeGroup) IsRunning() bool {
	return atomic.LoadInt32(&f.stopCalls) == 0
}

func (f *fakeGroup) CommitOffsets(context.Context) error {
	atomic.AddInt32(&f.commitCalls, 1)
	return nil
}

func newTestApp(fg *fakeGroup, commitInterval time.Duration) *app.App {
	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}
	return app.NewApp(nopLogger{}, srv, fg, time.Second, commitInterval)
}

func TestAppRun_GracefulShutdown(t *testing.T) {
	fg := &fakeGroup{}
	a := newTestApp(fg, time.Hour)

	// Запуск и быстрая остановка по отмене контекста
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if atomic.LoadInt32(&fg.startCalls) == 0 {
		t.Fatalf("group.Start should be called")
	}
	if atomic.LoadInt32(&fg.stopCalls) == 0 {
		t.Fatalf("group.Stop should be called")
	}
}

func TestAppRun_StopUnblocksRun(t *testing.T) {
	fg := &fakeGroup{}
	a := newTestApp(fg, time.Hour)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	time.Sleep(50 * time.Millisecond)

	// Аварийный останов хоста (путь эскалации группы)
	if err := a.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	_ = a.Stop() // идемпотентность

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run не завершился после Stop")
	}

	if atomic.LoadInt32(&fg.stopCalls) == 0 {
		t.Fatalf("group.Stop should be called")
	}
}

func TestAppRun_GroupStartErrorIsFatal(t *testing.T) {
	fg := &fakeGroup{startErr: errors.New("create streams: dial refused")}
	a := newTestApp(fg, time.Hour)

	if err := a.Run(context.Background()); err == nil {
		t.Fatal("ошибка старта группы должна выходить из Run")
	}
	if atomic.LoadInt32(&fg.stopCalls) != 0 {
		t.Fatalf("до старта останавливать нечего")
	}
}

func TestAppRun_PeriodicCommits(t *testing.T) {
	fg := &fakeGroup{}
	a := newTestApp(fg, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if atomic.LoadInt32(&fg.commitCalls) == 0 {
		t.Fatalf("ожидали фоновые коммиты оффсетов")
	}
}
