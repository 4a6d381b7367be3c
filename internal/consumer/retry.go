package consumer

import "time"

// UnlimitedRetries — значение MaxRetries без верхней границы попыток.
const UnlimitedRetries = -1

// maxBackoffShift — предохранитель от переполнения при 2^attempt:
// дальше этого показателя задержка заведомо упирается в MaxDelay.
const maxBackoffShift = 32

// RetryPolicy — неизменяемая политика перезапуска потока.
// Чистые функции от номера попытки и прошедшего времени, без побочных эффектов.
type RetryPolicy struct {
	InitialDelay time.Duration // задержка перед первым перезапуском
	MaxDelay     time.Duration // потолок экспоненциального роста
	ResetWindow  time.Duration // тишина, после которой счётчик попыток обнуляется
	MaxRetries   int           // бюджет подряд идущих попыток; -1 = без лимита
}

// DefaultRetryPolicy — значения по умолчанию для незаполненной политики.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		ResetWindow:  5 * time.Minute,
		MaxRetries:   UnlimitedRetries,
	}
}

// withDefaults — подставляет дефолты вместо нулевых полей.
func (p RetryPolicy) withDefaults() RetryPolicy {
	def := DefaultRetryPolicy()
	if p.InitialDelay <= 0 {
		p.InitialDelay = def.InitialDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = def.MaxDelay
	}
	if p.MaxDelay < p.InitialDelay {
		p.MaxDelay = p.InitialDelay
	}
	if p.ResetWindow <= 0 {
		p.ResetWindow = def.ResetWindow
	}
	if p.MaxRetries < UnlimitedRetries || p.MaxRetries == 0 {
		p.MaxRetries = def.MaxRetries
	}
	return p
}

// NextDelay — задержка перед перезапуском: min(MaxDelay, InitialDelay * 2^attempt).
// attempt нумеруется с нуля: NextDelay(0) == InitialDelay. Рост монотонный,
// арифметика насыщающая — переполнение срезается потолком до того, как
// успеет исказить результат.
func (p RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= maxBackoffShift {
		return p.MaxDelay
	}
	d := p.InitialDelay << uint(attempt)
	if d < p.InitialDelay || d > p.MaxDelay {
		// d < InitialDelay означает переполнение сдвига
		return p.MaxDelay
	}
	return d
}

// Exhausted — исчерпан ли бюджет попыток.
func (p RetryPolicy) Exhausted(attempts int) bool {
	return p.MaxRetries != UnlimitedRetries && attempts >= p.MaxRetries
}

// ShouldReset — пора ли обнулить счётчик попыток: с момента прошлой ошибки
// прошло не меньше ResetWindow. Сравнивается именно lastErrorAt, а не момент
// начала перезапуска — они расходятся на длительность backoff-сна.
func (p RetryPolicy) ShouldReset(now, lastErrorAt time.Time) bool {
	return now.Sub(lastErrorAt) >= p.ResetWindow
}
