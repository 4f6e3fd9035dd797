package notifier

import "context"

// Sink доставляет одно уведомление. Ошибка доставки никогда не откатывает
// изменение реестра, которое вызвало уведомление.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

// Metrics счетчики доставки
type Metrics interface {
	NotificationFailed(reason string)
	NotificationDropped()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
