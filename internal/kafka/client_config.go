package kafka

import (
	"strings"

	"github.com/segmentio/kafka-go"
)

// ClientConfig — настройки подключения брокер-клиента.
type ClientConfig struct {
	Brokers     []string
	GroupID     string
	StartOffset string
}

// ReaderConfig — конфигурация kafka.Reader для одного потока темы.
// Ручной коммит оффсетов: CommitInterval = 0.
func (c *ClientConfig) ReaderConfig(topic string) kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          topic,
		CommitInterval: 0,
	}

	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}
