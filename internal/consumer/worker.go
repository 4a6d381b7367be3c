package consumer

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Gunvolt24/wb_streams/internal/ports"
	"github.com/Gunvolt24/wb_streams/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_streams/pkg/metrics"
)

// streamWorker — исполнитель одного потока. Живёт одной долгой задачей
// в пуле: цикл «попытка -> классификация -> backoff -> снова попытка».
// Слот пула удерживается и во время backoff-сна — осознанный размен
// эффективности слота на простоту модели.
type streamWorker struct {
	group  *Group
	topic  string
	stream ports.Stream

	attempts    int
	lastErrorAt time.Time
}

func newStreamWorker(g *Group, topic string, stream ports.Stream) *streamWorker {
	return &streamWorker{group: g, topic: topic, stream: stream}
}

// run — выполняет попытки обработки потока до штатного завершения,
// фатальной ошибки или остановки группы. Ошибки наружу не отдаёт:
// единственный внешний эффект сбоя — эскалация в группу.
func (w *streamWorker) run(ctx context.Context) {
	ctx = ctxmeta.WithTopic(ctx, w.topic)

	metrics.StreamsActive.Inc()
	defer metrics.StreamsActive.Dec()

	for {
		// Пул закрыт на новые попытки или контекст отменён хостом —
		// не воскрешаем воркер: это остановка, а не сбой потока.
		if w.group.stopping() || ctx.Err() != nil {
			return
		}

		err := w.group.processor.Process(ctx, w.stream, w.topic)
		switch {
		case err == nil:
			// Поток исчерпан штатно: освобождаем слот без лишнего шума.
			w.group.log.Infof(ctx, "stream finished topic=%s", w.topic)
			return

		case errors.Is(err, ErrUnrecoverableStream):
			w.group.escalate(ctx, w.topic, err)
			return

		default:
			if !w.recoverable(ctx, err) {
				return
			}
		}
	}
}

// recoverable — обработка временной ошибки: сброс счётчика по окну тишины,
// проверка бюджета, backoff. Возвращает false, если произошла эскалация
// и цикл воркера должен завершиться.
func (w *streamWorker) recoverable(ctx context.Context, cause error) bool {
	// Ошибка на фоне отменённого контекста — следствие остановки,
	// а не деградации потока: не тратим бюджет и не эскалируем.
	if ctx.Err() != nil {
		return false
	}

	if w.group.retry.ShouldReset(w.group.now(), w.lastErrorAt) {
		w.attempts = 0
	}

	w.attempts++
	if w.group.retry.Exhausted(w.attempts) {
		w.group.log.Warnf(ctx, "stream retry budget spent topic=%s retries=%d", w.topic, w.group.retry.MaxRetries)
		w.group.escalate(ctx, w.topic, cause)
		return false
	}

	metrics.StreamRetries.WithLabelValues(w.topic).Inc()
	delay := w.group.retry.NextDelay(w.attempts - 1)
	w.group.log.Warnf(ctx, "stream error topic=%s, restarting in %s (%s remaining): %v",
		w.topic, delay, w.remainingRetries(), cause)

	if !w.sleep(ctx, delay) {
		// Прерывание ожидания — не ошибка: логируем и идём на перезапуск.
		w.group.log.Warnf(ctx, "stream restart grace period interrupted topic=%s", w.topic)
	}
	w.lastErrorAt = w.group.now()
	return true
}

// sleep — ждёт delay или прерывание контекста; false при прерывании.
func (w *streamWorker) sleep(ctx context.Context, delay time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}

func (w *streamWorker) remainingRetries() string {
	if w.group.retry.MaxRetries == UnlimitedRetries {
		return "unlimited"
	}
	return strconv.Itoa(w.group.retry.MaxRetries - w.attempts)
}
