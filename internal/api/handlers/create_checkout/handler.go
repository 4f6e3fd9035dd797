package create_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	createReservation "github.com/m04kA/atelier-booking/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide."
	msgIncomplete         = "Informations de réservation incomplètes."
	msgNotConfigured      = "La clé Stripe n'est pas configurée."
	msgFormationNotFound  = "Formation introuvable."
	msgSessionNotFound    = "Session sélectionnée introuvable."
	msgSessionCancelled   = "Cette session a été annulée. Merci de choisir une autre date."
	msgSessionClosed      = "Cette session est momentanément fermée aux réservations."
	msgSessionFull        = "Cette session est complète. Merci de choisir une autre date."
	msgGatewayFailure     = "Impossible de créer la session de paiement Stripe."
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/stripe/create-checkout-session
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stripe/create-checkout-session - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.ExecuteCheckout(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /stripe/create-checkout-session - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgIncomplete)

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

		case errors.Is(err, createReservation.ErrPaymentNotConfigured):
			h.logger.Error("POST /stripe/create-checkout-session - Payment gateway not configured")
			handlers.RespondError(w, http.StatusInternalServerError, msgNotConfigured)

		case errors.Is(err, createReservation.ErrPaymentGateway):
			h.logger.Error("POST /stripe/create-checkout-session - Gateway failure: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailure)

		default:
			h.logger.Error("POST /stripe/create-checkout-session - Failed to create checkout: session_id=%s, error=%v", req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stripe/create-checkout-session - Checkout created: reservation_id=%s", result.ReservationID)
	handlers.RespondJSON(w, http.StatusOK, &CreateCheckoutResponse{URL: result.URL, ReservationID: result.ReservationID})
}
