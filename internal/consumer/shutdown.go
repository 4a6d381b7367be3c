package consumer

import (
	"context"
	"sync/atomic"

	"github.com/Gunvolt24/wb_streams/internal/ports"
	"github.com/Gunvolt24/wb_streams/pkg/metrics"
)

const (
	shutdownNotTriggered int32 = iota
	shutdownTriggered
)

// shutdownCoordinator — одноразовый аварийный останов группы.
// Сколько бы воркеров ни упало фатально одновременно, тело останова
// выполняется ровно один раз: победитель определяется CAS-переходом
// NotTriggered -> Triggered, остальные вызовы возвращаются сразу.
type shutdownCoordinator struct {
	state int32

	group *Group
	log   ports.Logger
}

func newShutdownCoordinator(g *Group, log ports.Logger) *shutdownCoordinator {
	return &shutdownCoordinator{group: g, log: log}
}

// triggered — запускался ли останов (для тестов и диагностики).
func (c *shutdownCoordinator) triggered() bool {
	return atomic.LoadInt32(&c.state) == shutdownTriggered
}

// trigger — запускает останов, если он ещё не запускался.
// Тело выполняется в отдельной горутине, не привязанной ни к контексту,
// ни к задаче упавшего воркера: его слот в пуле должен освободиться до
// того, как Stop начнёт ждать завершения воркеров, иначе — дедлок.
func (c *shutdownCoordinator) trigger() {
	if !atomic.CompareAndSwapInt32(&c.state, shutdownNotTriggered, shutdownTriggered) {
		// останов уже запущен кем-то другим
		return
	}

	metrics.GroupShutdowns.Inc()

	go func() {
		ctx := context.Background()

		// Любая ошибка тела останова гасится здесь: путь эскалации
		// не имеет права упасть сам.
		if c.group.shutdownOnFatal && c.group.host() != nil {
			// Останавливаем весь сервис: группа остановится транзитивно,
			// поскольку хост управляет её жизненным циклом.
			if err := c.group.host().Stop(); err != nil {
				c.log.Errorf(ctx, "emergency host shutdown failed: %v", err)
			}
			return
		}

		if err := c.group.Stop(ctx); err != nil {
			c.log.Errorf(ctx, "emergency group shutdown failed: %v", err)
		}
	}()
}
