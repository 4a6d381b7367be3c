package ports

import (
	"context"
	"time"
)

// Message — одно сообщение, прочитанное из потока.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Time      time.Time
}

// Stream — упорядоченный поток сообщений одной партиции.
// Воркеры только читают поток; владеет им (и закрывает его) брокер-клиент.
// Исчерпание потока сигнализируется ошибкой io.EOF из Fetch.
type Stream interface {
	Fetch(ctx context.Context) (Message, error)
}

// BrokerClient — контракт клиента брокера: открытие потоков, коммит
// оффсетов и освобождение ресурсов. Потокобезопасность реализации —
// её собственная забота, движок не берёт на неё внешних блокировок.
type BrokerClient interface {
	// CreateStreams — открывает потоки по карте topic -> число потоков.
	CreateStreams(ctx context.Context, partitions map[string]int) (map[string][]Stream, error)

	// CommitOffsets — фиксирует прочитанные, но незакоммиченные оффсеты.
	CommitOffsets(ctx context.Context) error

	// Shutdown — закрывает все потоки и соединения. Вызывается один раз.
	Shutdown() error
}
