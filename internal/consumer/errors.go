package consumer

import (
	"errors"
	"fmt"
)

// ErrUnrecoverableStream — sentinel-ошибка «поток в невосстановимом
// состоянии». Классификация закрытая и явная: всё, что обёрнуто в эту
// ошибку, останавливает группу без повторных попыток; любая другая
// ошибка обработки считается временной и ретраится с backoff.
var ErrUnrecoverableStream = errors.New("unrecoverable stream state")

// Unrecoverable — помечает ошибку как фатальную для потока.
// Обработчик потока использует это, когда повторять смысла нет
// (например, нарушен инвариант данных, а не связность сети).
func Unrecoverable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUnrecoverableStream, err)
}
