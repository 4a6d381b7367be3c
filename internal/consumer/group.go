package consumer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/wb_streams/internal/ports"
	"github.com/Gunvolt24/wb_streams/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Проверка, что Group удовлетворяет порту приложения.
var _ ports.ConsumerGroup = (*Group)(nil)

// GroupConfig — конфигурация группы потребления.
type GroupConfig struct {
	Partitions          map[string]int // topic -> число потоков
	Workers             int            // размер пула; <= 0 — по числу потоков
	Retry               RetryPolicy
	ShutdownOnFatal     bool          // останавливать весь хост при фатальной ошибке
	ShutdownGracePeriod time.Duration // ожидание воркеров при остановке
}

// Group — супервизор потребления: владеет набором потоков, пулом воркеров
// и единственным на группу путём аварийной эскалации. Ошибки отдельных
// воркеров наружу не выходят: извне наблюдаемы только флаг живости и
// (при соответствующей конфигурации) остановка группы/хоста.
type Group struct {
	broker    ports.BrokerClient
	processor ports.StreamProcessor
	log       ports.Logger

	partitions  map[string]int
	workers     int
	retry       RetryPolicy
	gracePeriod time.Duration

	shutdownOnFatal bool
	hostRef         ports.Host // задаётся до Start через AttachHost

	coord *shutdownCoordinator
	pool  errgroup.Group
	done  chan struct{}

	started  atomic.Bool
	stopFlag atomic.Bool
	fatal    atomic.Bool
	stopOnce sync.Once

	// now — источник времени; подменяется в тестах окна сброса ретраев.
	now func() time.Time
}

// NewGroup — конструктор. Нулевые поля конфигурации получают дефолты.
func NewGroup(cfg GroupConfig, broker ports.BrokerClient, processor ports.StreamProcessor, log ports.Logger) *Group {
	grace := cfg.ShutdownGracePeriod
	if grace <= 0 {
		grace = 30 * time.Second
	}

	g := &Group{
		broker:          broker,
		processor:       processor,
		log:             log,
		partitions:      cfg.Partitions,
		workers:         cfg.Workers,
		retry:           cfg.Retry.withDefaults(),
		gracePeriod:     grace,
		shutdownOnFatal: cfg.ShutdownOnFatal,
		done:            make(chan struct{}),
		now:             time.Now,
	}
	g.coord = newShutdownCoordinator(g, log)
	return g
}

// AttachHost — подключает хост-сервис для аварийного останова целиком.
// Вызывается один раз до Start.
func (g *Group) AttachHost(h ports.Host) { g.hostRef = h }

// Start — открывает потоки у брокер-клиента и запускает по воркеру на поток.
// Ошибка CreateStreams уходит вызывающему как есть, без ретраев здесь.
// Не идемпотентен: повторный вызов переподпишется и задвоит воркеры.
func (g *Group) Start(ctx context.Context) error {
	streams, err := g.broker.CreateStreams(ctx, g.partitions)
	if err != nil {
		return fmt.Errorf("create streams: %w", err)
	}

	// Упорядоченный обход тем — для стабильных логов и порядка запуска.
	topics := make([]string, 0, len(streams))
	total := 0
	for topic, list := range streams {
		topics = append(topics, topic)
		total += len(list)
	}
	sort.Strings(topics)

	limit := g.workers
	if limit <= 0 {
		limit = total
	}
	if limit <= 0 {
		limit = 1
	}
	g.pool.SetLimit(limit)

	workers := make([]*streamWorker, 0, total)
	for _, topic := range topics {
		list := streams[topic]
		g.log.Infof(ctx, "consuming topic=%s streams=%d", topic, len(list))
		for _, s := range list {
			workers = append(workers, newStreamWorker(g, topic, s))
		}
	}

	g.started.Store(true)

	// Подача воркеров в пул — в фоне: при пуле меньше числа потоков
	// Go блокируется до свободного слота, а Start блокировать нельзя.
	go func() {
		for _, w := range workers {
			w := w
			g.pool.Go(func() error {
				w.run(ctx)
				return nil
			})
		}
		_ = g.pool.Wait()
		close(g.done)
	}()

	return nil
}

// Stop — идемпотентная остановка группы. Безопасен для вызова из пути
// собственной аварийной эскалации. Первый вызов закрывает брокер-клиент
// и запрещает новые попытки; каждый вызов ждёт завершения воркеров,
// но не дольше grace-периода. Насильно воркеры не прерываются: текущая
// попытка всегда доживает до естественного конца.
func (g *Group) Stop(ctx context.Context) error {
	g.stopOnce.Do(func() {
		g.stopFlag.Store(true)
		g.log.Infof(ctx, "consumer group stopping (grace=%s)", g.gracePeriod)
		if err := g.broker.Shutdown(); err != nil {
			// повторное закрытие соединений — не повод поднимать ошибку наверх
			g.log.Warnf(ctx, "broker shutdown: %v", err)
		}
	})

	if !g.started.Load() {
		return nil
	}

	select {
	case <-g.done:
		g.log.Infof(ctx, "all stream workers finished")
	case <-time.After(g.gracePeriod):
		g.log.Warnf(ctx, "grace period %s elapsed, in-flight workers left to finish naturally", g.gracePeriod)
	case <-ctx.Done():
		g.log.Warnf(ctx, "stop wait interrupted: %v", ctx.Err())
	}
	return nil
}

// IsRunning — точечная проверка живости: пул не остановлен и не завершён,
// фатальных ошибок не было. Становится false сразу после эскалации,
// ещё до того, как Stop дождётся воркеров.
func (g *Group) IsRunning() bool {
	return !g.fatal.Load() && !g.stopFlag.Load() && !g.terminated()
}

// CommitOffsets — прямое делегирование брокер-клиенту, без своего состояния.
func (g *Group) CommitOffsets(ctx context.Context) error {
	return g.broker.CommitOffsets(ctx)
}

// escalate — фатальная ошибка воркера: флаг живости падает немедленно,
// останов запускается строго один раз на группу.
func (g *Group) escalate(ctx context.Context, topic string, cause error) {
	metrics.StreamFatalErrors.WithLabelValues(topic).Inc()
	g.log.Errorf(ctx, "unrecoverable stream error topic=%s, shutting down: %v", topic, cause)
	g.fatal.Store(true)
	g.coord.trigger()
}

func (g *Group) stopping() bool { return g.stopFlag.Load() }

func (g *Group) host() ports.Host { return g.hostRef }

func (g *Group) terminated() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}
