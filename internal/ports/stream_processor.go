package ports

import "context"

// StreamProcessor — обработка одного потока до исчерпания или ошибки.
// Возврат nil означает, что поток закончился штатно. Любая другая ошибка
// считается временной и поток будет перезапущен с backoff — кроме ошибок,
// обёрнутых в consumer.ErrUnrecoverableStream: по ним группа останавливается.
type StreamProcessor interface {
	Process(ctx context.Context, stream Stream, topic string) error
}

// EventHandler — бизнес-обработка одного сырого сообщения из потока.
type EventHandler interface {
	HandleEvent(ctx context.Context, topic string, raw []byte) error
}
