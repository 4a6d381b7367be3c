package kafka

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Gunvolt24/wb_streams/internal/ports"
	"github.com/segmentio/kafka-go"
)

// reader — минимальный контракт над kafka.Reader,
// чтобы легко подменять его фейками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// stream — один поток партиций темы поверх kafka.Reader.
// Запоминает последнее прочитанное сообщение: коммит оффсетов идёт
// не по сообщению, а по потоку целиком (CommitOffsets у клиента).
type stream struct {
	r reader

	mu      sync.Mutex
	pending kafka.Message
	fetched bool
}

var _ ports.Stream = (*stream)(nil)

func newStream(r reader) *stream { return &stream{r: r} }

// Fetch — следующее сообщение потока. Закрытый reader транслируется
// в io.EOF: для движка это штатное исчерпание потока, а не сбой.
func (s *stream) Fetch(ctx context.Context) (ports.Message, error) {
	msg, err := s.r.FetchMessage(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
			return ports.Message{}, io.EOF
		}
		return ports.Message{}, err
	}

	s.mu.Lock()
	s.pending = msg
	s.fetched = true
	s.mu.Unlock()

	return ports.Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       msg.Key,
		Value:     msg.Value,
		Time:      msg.Time,
	}, nil
}

// commit — фиксирует оффсет последнего прочитанного сообщения (если было).
func (s *stream) commit(ctx context.Context) error {
	s.mu.Lock()
	msg, ok := s.pending, s.fetched
	s.fetched = false
	s.mu.Unlock()

	if !ok {
		return nil
	}
	return s.r.CommitMessages(ctx, msg)
}

func (s *stream) close() error { return s.r.Close() }
