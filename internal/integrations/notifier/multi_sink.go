package notifier

import (
	"context"
	"errors"
)

// MultiSink отправляет уведомление во все sink'и и объединяет ошибки
type MultiSink []Sink

func (m MultiSink) Send(ctx context.Context, n Notification) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
