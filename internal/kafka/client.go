package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Gunvolt24/wb_streams/internal/ports"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Client удовлетворяет порту брокер-клиента.
var _ ports.BrokerClient = (*Client)(nil)

// newReader — фабрика reader'ов; в тестах подменяется фейком.
type newReaderFunc func(rc kafka.ReaderConfig) reader

// Client — брокер-клиент поверх segmentio/kafka-go.
// На каждый запрошенный поток темы создаётся свой kafka.Reader с общим
// GroupID: партиции темы брокер распределит между reader'ами сам.
type Client struct {
	cfg       ClientConfig
	log       ports.Logger
	newReader newReaderFunc

	mu      sync.Mutex
	streams []*stream

	closeOnce sync.Once
	closeErr  error
}

// NewClient — конструктор клиента.
func NewClient(cfg ClientConfig, log ports.Logger) *Client {
	return &Client{
		cfg: cfg,
		log: log,
		newReader: func(rc kafka.ReaderConfig) reader {
			return kafka.NewReader(rc)
		},
	}
}

// CreateStreams — открывает потоки по карте topic -> число потоков.
// Вызывается один раз при старте группы.
func (c *Client) CreateStreams(ctx context.Context, partitions map[string]int) (map[string][]ports.Stream, error) {
	if len(partitions) == 0 {
		return nil, errors.New("empty partition map")
	}

	out := make(map[string][]ports.Stream, len(partitions))

	c.mu.Lock()
	defer c.mu.Unlock()

	for topic, count := range partitions {
		if topic == "" {
			return nil, errors.New("empty topic in partition map")
		}
		if count <= 0 {
			count = 1
		}

		list := make([]ports.Stream, 0, count)
		for i := 0; i < count; i++ {
			s := newStream(c.newReader(c.cfg.ReaderConfig(topic)))
			c.streams = append(c.streams, s)
			list = append(list, s)
		}
		out[topic] = list
	}

	return out, nil
}

// CommitOffsets — коммитит последние прочитанные оффсеты всех потоков.
func (c *Client) CommitOffsets(ctx context.Context) error {
	c.mu.Lock()
	streams := append([]*stream(nil), c.streams...)
	c.mu.Unlock()

	var firstErr error
	for _, s := range streams {
		if err := s.commit(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("commit offsets: %w", err)
		}
	}
	return firstErr
}

// Shutdown — закрывает все reader'ы. Повторные вызовы возвращают
// результат первого и ничего не закрывают заново.
func (c *Client) Shutdown() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		streams := c.streams
		c.streams = nil
		c.mu.Unlock()

		for _, s := range streams {
			if err := s.close(); err != nil && c.closeErr == nil {
				c.closeErr = err
			}
		}
	})
	return c.closeErr
}
