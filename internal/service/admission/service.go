package admission

import (
	"context"
	"fmt"
)

// Service проверка допуска бронирования на сессию.
// Один и тот же порядок проверок используется при банковском переводе, оплате картой,
// смене сессии клиентом и переназначении администратором.
type Service struct {
	availability AvailabilityReader
	reservations ReservationCounter
	metrics      Metrics
	logger       Logger

	locks *keyedMutex
}

// NewService создает новый экземпляр сервиса допуска. metrics может быть nil.
func NewService(availability AvailabilityReader, reservations ReservationCounter, metrics Metrics, logger Logger) *Service {
	return &Service{
		availability: availability,
		reservations: reservations,
		metrics:      metrics,
		logger:       logger,
		locks:        newKeyedMutex(),
	}
}

// Check проверяет сессию: отменена -> закрыта -> заполнена.
// excludeID не учитывается в подсчете (перемещаемое бронирование).
func (s *Service) Check(ctx context.Context, sessionID, excludeID string) error {
	av, err := s.availability.Get(ctx, sessionID)
	if err != nil {
		s.logger.Error("Admission: failed to read availability for session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: availability: %v", ErrInternal, err)
	}

	if av.IsCancelled {
		return s.refuse(sessionID, ErrSessionCancelled)
	}
	if !av.IsOpen {
		return s.refuse(sessionID, ErrSessionClosed)
	}

	count, err := s.reservations.CountActive(ctx, sessionID, excludeID)
	if err != nil {
		s.logger.Error("Admission: failed to count reservations for session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: count reservations: %v", ErrInternal, err)
	}

	// capacity = 3: допустимо count = 0, 1, 2
	if count >= av.Capacity {
		s.logger.Warn("Admission: session=%s full, %d/%d seats taken", sessionID, count, av.Capacity)
		return s.refuse(sessionID, ErrSessionFull)
	}

	s.logger.Info("Admission: session=%s admitted, %d/%d seats taken", sessionID, count, av.Capacity)
	return nil
}

// Admit выполняет Check и, если он прошел, write - под блокировкой сессии.
// Так два запроса в одном процессе не могут занять последнее место одновременно.
func (s *Service) Admit(ctx context.Context, sessionID, excludeID string, write func(ctx context.Context) error) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Check(ctx, sessionID, excludeID); err != nil {
		return err
	}
	return write(ctx)
}

func (s *Service) refuse(sessionID string, err error) error {
	s.logger.Warn("Admission: session=%s refused: %v", sessionID, err)
	if s.metrics != nil {
		s.metrics.AdmissionRefused(Reason(err))
	}
	return err
}
