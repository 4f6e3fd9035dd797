package admin_sessions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	"github.com/m04kA/atelier-booking/internal/service/admin"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide."
	msgMissingFormation   = "formationId est obligatoire."
	msgInvalidSession     = "Merci d'indiquer un libellé et des dates valides (AAAA-MM-JJ)."
	msgFormationNotFound  = "Formation introuvable."
	msgSessionNotFound    = "Session introuvable."
	msgDuplicateSession   = "Une session avec cet identifiant existe déjà."
	msgCannotSave         = "Impossible de modifier les sessions pour le moment."
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

// Create POST /api/admin/sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req AddSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	formationID := strings.TrimSpace(req.FormationID)
	if formationID == "" {
		handlers.RespondBadRequest(w, msgMissingFormation)
		return
	}

	session, err := h.service.AddSession(r.Context(), formationID, req.toDraft())
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidInput):
			h.logger.Warn("POST /admin/sessions - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSession)
		case errors.Is(err, admin.ErrFormationNotFound):
			handlers.RespondNotFound(w, msgFormationNotFound)
		case errors.Is(err, admin.ErrDuplicateSession):
			handlers.RespondConflict(w, msgDuplicateSession)
		default:
			h.logger.Error("POST /admin/sessions - Failed to add session: formation_id=%s, error=%v", formationID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgCannotSave)
		}
		return
	}

	h.logger.Info("POST /admin/sessions - Session added: formation_id=%s, session_id=%s", formationID, session.ID)
	handlers.RespondJSON(w, http.StatusCreated, fromDomain(formationID, session))
}

// Delete DELETE /api/admin/sessions/{sessionId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.service.RemoveSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, admin.ErrSessionNotFound) {
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("DELETE /admin/sessions/%s - Failed to remove session: %v", sessionID, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgCannotSave)
		return
	}

	h.logger.Info("DELETE /admin/sessions/%s - Session removed", sessionID)
	w.WriteHeader(http.StatusNoContent)
}
