package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Gunvolt24/wb_streams/internal/consumer"
	"github.com/Gunvolt24/wb_streams/internal/ports"
	"github.com/Gunvolt24/wb_streams/pkg/metrics"
	"github.com/Gunvolt24/wb_streams/pkg/validate"
)

// Проверка, что Processor удовлетворяет порту обработчика потоков.
var _ ports.StreamProcessor = (*Processor)(nil)

// Config — настройки конвейера обработки.
type Config struct {
	// ProcessTimeout — таймаут бизнес-обработки одного сообщения.
	ProcessTimeout time.Duration

	// SkipMalformed — пропускать невалидные сообщения (лог + метрика),
	// не роняя поток в перезапуск. Выключенный режим отдаёт ошибку
	// валидации наверх как временную.
	SkipMalformed bool
}

// Processor — конвейер «fetch -> handle» поверх одного потока.
// Возвращает nil на io.EOF (поток исчерпан); любая другая ошибка —
// временная с точки зрения движка, кроме помеченных невосстановимыми.
type Processor struct {
	handler ports.EventHandler
	log     ports.Logger

	processTimeout time.Duration
	skipMalformed  bool
}

// NewProcessor — конструктор. Нулевой таймаут получает дефолт.
func NewProcessor(cfg Config, handler ports.EventHandler, log ports.Logger) *Processor {
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}

	return &Processor{
		handler:        handler,
		log:            log,
		processTimeout: pt,
		skipMalformed:  cfg.SkipMalformed,
	}
}

// Process — вычитывает поток до исчерпания или первой неснимаемой ошибки.
func (p *Processor) Process(ctx context.Context, stream ports.Stream, topic string) error {
	for {
		msg, err := stream.Fetch(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				// поток закончился штатно
				return nil
			}
			return fmt.Errorf("fetch topic=%s: %w", topic, err)
		}

		metrics.KafkaMessagesConsumed.WithLabelValues(topic).Inc()

		if err := p.handleMessage(ctx, topic, &msg); err != nil {
			return err
		}
	}
}

// handleMessage — бизнес-обработка одного сообщения с таймаутом.
// nil означает «идём за следующим сообщением».
func (p *Processor) handleMessage(ctx context.Context, topic string, msg *ports.Message) error {
	hctx, cancel := context.WithTimeout(ctx, p.processTimeout)
	err := p.handler.HandleEvent(hctx, topic, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return nil

	case errors.Is(err, consumer.ErrUnrecoverableStream):
		// обработчик сдался окончательно — отдаём движку как есть
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		return err

	case errors.Is(err, validate.ErrInvalidEvent):
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		if p.skipMalformed {
			// мусор не ретраим: логируем и читаем дальше
			p.log.Warnf(ctx, "invalid message topic=%s offset=%d: %v (skipped)", topic, msg.Offset, err)
			return nil
		}
		return fmt.Errorf("handle topic=%s offset=%d: %w", topic, msg.Offset, err)

	default:
		// временная ошибка (хранилище/таймаут): поток уйдёт в перезапуск
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		return fmt.Errorf("handle topic=%s offset=%d: %w", topic, msg.Offset, err)
	}
}
