package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	"github.com/m04kA/atelier-booking/internal/domain"
	createReservation "github.com/m04kA/atelier-booking/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide."
	msgMissingFields      = "Merci de compléter tous les champs requis."
	msgTransferOnly       = "Ce point d'entrée gère uniquement les virements bancaires."
	msgFormationNotFound  = "Formation introuvable."
	msgSessionNotFound    = "Session sélectionnée introuvable."
	msgSessionCancelled   = "Cette session a été annulée. Merci de choisir une autre date."
	msgSessionClosed      = "Cette session est momentanément fermée aux réservations."
	msgSessionFull        = "Cette session est complète. Merci de choisir une autre date ou nous contacter."
	msgCannotSave         = "Impossible d'enregistrer la réservation pour le moment."
	msgCreated            = "Votre réservation est bien enregistrée. Merci d'effectuer le virement avant le début du stage pour confirmer votre place."
)

type Handler struct {
	useCase TransferUseCase
	logger  Logger
}

func NewHandler(useCase TransferUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.PaymentMethod != "" {
		if method, err := domain.ParsePaymentMethod(req.PaymentMethod); err != nil || method != domain.PaymentBankTransfer {
			h.logger.Warn("POST /reservations - Unsupported payment method: %s", req.PaymentMethod)
			handlers.RespondBadRequest(w, msgTransferOnly)
			return
		}
	}

	result, err := h.useCase.ExecuteTransfer(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, createReservation.ErrFormationNotFound):
			handlers.RespondNotFound(w, msgFormationNotFound)

		case errors.Is(err, createReservation.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, createReservation.ErrSessionCancelled):
			handlers.RespondConflict(w, msgSessionCancelled)

		case errors.Is(err, createReservation.ErrSessionClosed):
			handlers.RespondConflict(w, msgSessionClosed)

		case errors.Is(err, createReservation.ErrSessionFull):
			handlers.RespondConflict(w, msgSessionFull)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: session_id=%s, error=%v", req.SessionID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgCannotSave)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%s, session_id=%s", result.ReservationID, req.SessionID)
	handlers.RespondJSON(w, http.StatusOK, &CreateReservationResponse{
		Message:       msgCreated,
		IBAN:          result.IBAN,
		ReservationID: result.ReservationID,
		Status:        result.Status,
	})
}
