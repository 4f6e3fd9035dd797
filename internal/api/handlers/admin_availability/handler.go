package admin_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/service/admin"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide."
	msgInvalidCapacity    = "La capacité doit être un nombre positif."
	msgInvalidIsOpen      = "isOpen doit être un booléen."
	msgInvalidIsCancelled = "isCancelled doit être un booléen."
	msgSessionNotFound    = "Session introuvable."
	msgCannotList         = "Impossible de récupérer les disponibilités."
	msgCannotUpdate       = "Impossible de mettre à jour la disponibilité."
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/admin/availability
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.GetAvailabilityOverview(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/availability - Failed to build overview: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgCannotList)
		return
	}
	if sessions == nil {
		sessions = []domain.SessionOccupancy{}
	}
	handlers.RespondJSON(w, http.StatusOK, &OverviewResponse{Sessions: sessions})
}

// Update PUT /api/admin/availability/{sessionId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/availability/%s - Invalid request body: %v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	update, err := req.ToDomain()
	if err != nil {
		switch {
		case errors.Is(err, errIsOpenType):
			handlers.RespondBadRequest(w, msgInvalidIsOpen)
		case errors.Is(err, errIsCancelledType):
			handlers.RespondBadRequest(w, msgInvalidIsCancelled)
		default:
			handlers.RespondBadRequest(w, msgInvalidCapacity)
		}
		return
	}

	updated, err := h.service.SetAvailability(r.Context(), sessionID, update)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidCapacity)
		case errors.Is(err, admin.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)
		default:
			h.logger.Error("PUT /admin/availability/%s - Failed to update: %v", sessionID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgCannotUpdate)
		}
		return
	}

	h.logger.Info("PUT /admin/availability/%s - Updated: capacity=%d, open=%t, cancelled=%t",
		sessionID, updated.Capacity, updated.IsOpen, updated.IsCancelled)
	handlers.RespondJSON(w, http.StatusOK, fromDomain(updated))
}
