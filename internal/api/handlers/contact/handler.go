package contact

import (
	"errors"
	"net/http"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	contactService "github.com/m04kA/atelier-booking/internal/service/contact"
)

const (
	msgMissingFields = "Merci de remplir nom, email et message."
	msgCannotSave    = "Impossible d'enregistrer votre message pour le moment."
	msgThanks        = "Merci pour votre message ! Nous vous recontactons très vite."
)

type Handler struct {
	service ContactService
	logger  Logger
}

func NewHandler(service ContactService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/contact
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contact - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	record, err := h.service.Submit(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		if errors.Is(err, contactService.ErrInvalidInput) {
			h.logger.Warn("POST /contact - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgMissingFields)
			return
		}
		h.logger.Error("POST /contact - Failed to store message: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgCannotSave)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &SubmitResponse{Message: msgThanks, ContactID: record.ID})
}
