package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
	"github.com/m04kA/atelier-booking/internal/integrations/payment"
	"github.com/m04kA/atelier-booking/internal/service/admission"
	"github.com/m04kA/atelier-booking/internal/service/catalog"
)

// UseCase use case бронирования места переводом или картой
type UseCase struct {
	catalog      CatalogReader
	admission    Admission
	reservations ReservationRepository
	gateway      PaymentGateway
	notifier     Notifier
	metrics      Metrics
	iban         string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	catalog CatalogReader,
	admission Admission,
	reservations ReservationRepository,
	gateway PaymentGateway,
	notifier Notifier,
	metrics Metrics,
	iban string,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		admission:    admission,
		reservations: reservations,
		gateway:      gateway,
		notifier:     notifier,
		metrics:      metrics,
		iban:         iban,
		logger:       logger,
	}
}

// ExecuteTransfer бронирует место с оплатой банковским переводом
func (uc *UseCase) ExecuteTransfer(ctx context.Context, req *Request) (*TransferResponse, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateTransfer: validation failed: %v", err)
		return nil, err
	}
	uc.logger.Info("CreateTransfer: formation=%s, session=%s", req.FormationID, req.SessionID)

	formation, session, err := uc.resolve(ctx, "CreateTransfer", req)
	if err != nil {
		return nil, err
	}

	var created *domain.Reservation
	err = uc.admission.Admit(ctx, session.ID, "", func(ctx context.Context) error {
		r, err := uc.reservations.Create(ctx, newReservation(formation, session, req, domain.PaymentBankTransfer, domain.StatusTransferPending, ""))
		if err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, uc.admissionError("CreateTransfer", session.ID, err)
	}

	uc.countCreated(domain.PaymentBankTransfer)
	uc.notifier.Notify(ctx, notifier.Notification{
		Reservation: *created,
		Reason:      notifier.ReasonPending,
		Location:    formation.Location,
	})

	uc.logger.Info("CreateTransfer: reservation id=%s created for session=%s", created.ID, session.ID)
	return &TransferResponse{
		ReservationID: created.ID,
		IBAN:          uc.iban,
		Status:        string(created.Status),
	}, nil
}

// ExecuteCheckout создает страницу оплаты картой и бронирование в статусе card_pending.
// Страница создается до записи в реестр: если шлюз недоступен, ничего не сохраняется.
func (uc *UseCase) ExecuteCheckout(ctx context.Context, req *Request) (*CheckoutResponse, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCheckout: validation failed: %v", err)
		return nil, err
	}
	uc.logger.Info("CreateCheckout: formation=%s, session=%s", req.FormationID, req.SessionID)

	formation, session, err := uc.resolve(ctx, "CreateCheckout", req)
	if err != nil {
		return nil, err
	}

	// Предварительная проверка, чтобы не создавать страницу оплаты на заполненную сессию
	if err := uc.admission.Check(ctx, session.ID, ""); err != nil {
		return nil, uc.admissionError("CreateCheckout", session.ID, err)
	}

	checkout, err := uc.gateway.CreateCheckout(ctx, payment.CheckoutRequest{
		Formation:     *formation,
		Session:       *session,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			uc.logger.Error("CreateCheckout: payment gateway is not configured")
			return nil, ErrPaymentNotConfigured
		}
		uc.logger.Error("CreateCheckout: gateway failed for session=%s: %v", session.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	var created *domain.Reservation
	err = uc.admission.Admit(ctx, session.ID, "", func(ctx context.Context) error {
		r, err := uc.reservations.Create(ctx, newReservation(formation, session, req, domain.PaymentCard, domain.StatusCardPending, checkout.ExternalID))
		if err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		// Страница оплаты уже создана; она истечет сама, а событие expired не найдет брони
		return nil, uc.admissionError("CreateCheckout", session.ID, err)
	}

	uc.countCreated(domain.PaymentCard)
	uc.logger.Info("CreateCheckout: reservation id=%s created, external=%s", created.ID, checkout.ExternalID)
	return &CheckoutResponse{
		ReservationID: created.ID,
		URL:           checkout.URL,
	}, nil
}

// resolve проверяет, что сессия принадлежит формации
func (uc *UseCase) resolve(ctx context.Context, op string, req *Request) (*domain.Formation, *domain.SessionOption, error) {
	formation, session, err := uc.catalog.FindSession(ctx, req.FormationID, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrFormationNotFound):
			uc.logger.Warn("%s: formation=%s not found", op, req.FormationID)
			return nil, nil, ErrFormationNotFound
		case errors.Is(err, catalog.ErrSessionNotFound):
			uc.logger.Warn("%s: session=%s not found in formation=%s", op, req.SessionID, req.FormationID)
			return nil, nil, ErrSessionNotFound
		}
		uc.logger.Error("%s: failed to read catalog: %v", op, err)
		return nil, nil, fmt.Errorf("%w: failed to read catalog: %v", ErrInternal, err)
	}
	return formation, session, nil
}

func (uc *UseCase) admissionError(op, sessionID string, err error) error {
	switch {
	case errors.Is(err, admission.ErrSessionCancelled):
		return ErrSessionCancelled
	case errors.Is(err, admission.ErrSessionClosed):
		return ErrSessionClosed
	case errors.Is(err, admission.ErrSessionFull):
		return ErrSessionFull
	}
	uc.logger.Error("%s: failed to admit reservation for session=%s: %v", op, sessionID, err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

func (uc *UseCase) countCreated(method domain.PaymentMethod) {
	if uc.metrics != nil {
		uc.metrics.ReservationCreated(string(method))
	}
}

func newReservation(
	formation *domain.Formation,
	session *domain.SessionOption,
	req *Request,
	method domain.PaymentMethod,
	status domain.ReservationStatus,
	externalID string,
) domain.NewReservation {
	return domain.NewReservation{
		FormationID:              formation.ID,
		FormationTitle:           formation.Title,
		SessionID:                session.ID,
		SessionLabel:             session.Label,
		CustomerName:             req.CustomerName,
		CustomerEmail:            req.CustomerEmail,
		PaymentMethod:            method,
		Status:                   status,
		ExternalPaymentSessionID: externalID,
	}
}
