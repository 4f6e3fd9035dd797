package get_availability

import (
	"net/http"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
)

const msgUnavailable = "Impossible de récupérer les disponibilités pour le moment."

type Handler struct {
	catalog      CatalogService
	reservations ReservationService
	availability AvailabilityService
	logger       Logger
}

func NewHandler(catalog CatalogService, reservations ReservationService, availability AvailabilityService, logger Logger) *Handler {
	return &Handler{
		catalog:      catalog,
		reservations: reservations,
		availability: availability,
		logger:       logger,
	}
}

// Handle GET /api/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	formations, err := h.catalog.ListFormations(ctx)
	if err != nil {
		h.logger.Error("GET /availability - Failed to list formations: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgUnavailable)
		return
	}
	reservations, err := h.reservations.ListAll(ctx)
	if err != nil {
		h.logger.Error("GET /availability - Failed to list reservations: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgUnavailable)
		return
	}
	sessions, err := h.availability.ListWithOccupancy(ctx, formations, reservations)
	if err != nil {
		h.logger.Error("GET /availability - Failed to compute occupancy: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgUnavailable)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(sessions))
}
