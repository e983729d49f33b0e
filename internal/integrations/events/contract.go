package events

import "context"

// Handler обработчик события
type Handler func(ctx context.Context, event ReservationChanged)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
