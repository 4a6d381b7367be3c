package ports

// Host — остановка всего хост-сервиса (а вместе с ним и группы потребления).
// Используется координатором аварийного останова при ShutdownOnFatal.
type Host interface {
	Stop() error
}
