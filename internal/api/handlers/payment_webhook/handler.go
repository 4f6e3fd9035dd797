package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	paymentEvents "github.com/m04kA/atelier-booking/internal/usecase/payment_events"
)

const (
	signatureHeader = "Stripe-Signature"
	maxPayloadBytes = 64 << 10

	msgInvalidEvent  = "Signature du webhook invalide."
	msgInternalError = "Erreur interne lors du traitement du webhook."
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/stripe/webhook
// Тело читается без декодирования: подпись проверяется по исходным байтам.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /stripe/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEvent)
		return
	}

	result, err := h.useCase.Execute(r.Context(), payload, r.Header.Get(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, paymentEvents.ErrInvalidEvent):
			h.logger.Warn("POST /stripe/webhook - Invalid event: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEvent)
		default:
			h.logger.Error("POST /stripe/webhook - Failed to process event: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	h.logger.Info("POST /stripe/webhook - Event processed: event_id=%s, outcome=%s, reservation_id=%s",
		result.EventID, result.Outcome, result.ReservationID)
	handlers.RespondJSON(w, http.StatusOK, &WebhookResponse{Received: true})
}
