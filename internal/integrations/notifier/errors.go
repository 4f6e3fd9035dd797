package notifier

import "errors"

var (
	// ErrNoRecipient возвращается, когда у бронирования нет e-mail
	ErrNoRecipient = errors.New("notifier: reservation has no recipient")

	// ErrPublish возвращается при ошибке публикации в брокер
	ErrPublish = errors.New("notifier: failed to publish")

	// ErrClosed возвращается, когда диспетчер уже остановлен
	ErrClosed = errors.New("notifier: dispatcher closed")
)
