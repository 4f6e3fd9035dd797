package notifier

import "context"

// LogSink пишет письма в лог. Используется, когда брокер не настроен.
type LogSink struct {
	template Template
	logger   Logger
}

// NewLogSink создает sink, который только логирует письма
func NewLogSink(template Template, logger Logger) *LogSink {
	return &LogSink{template: template, logger: logger}
}

func (s *LogSink) Send(_ context.Context, n Notification) error {
	msg, err := s.template.Render(n)
	if err != nil {
		return err
	}
	s.logger.Info("Notify: reason=%s reservation=%s to=%s subject=%q",
		n.Reason, n.Reservation.ID, msg.To, msg.Subject)
	return nil
}
