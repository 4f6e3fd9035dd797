package list_formations

import (
	"net/http"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/formations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	formations, err := h.service.ListFormations(r.Context())
	if err != nil {
		h.logger.Error("GET /formations - Failed to list formations: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromDomain(formations))
}
