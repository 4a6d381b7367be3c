package ports

import "context"

// ConsumerGroup — внешняя поверхность движка потребления для хост-приложения.
type ConsumerGroup interface {
	// Start — открывает потоки и запускает воркеры. Не идемпотентен:
	// повторный вызов переподпишется и задвоит воркеры.
	Start(ctx context.Context) error

	// Stop — идемпотентная остановка: закрывает брокер-клиент, запрещает
	// новые попытки и ждёт завершения воркеров в пределах grace-периода.
	Stop(ctx context.Context) error

	// IsRunning — точечная проверка живости для health-чеков.
	IsRunning() bool

	// CommitOffsets — прямое делегирование брокер-клиенту.
	CommitOffsets(ctx context.Context) error
}
