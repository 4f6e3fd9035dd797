package admin_contact

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	"github.com/m04kA/atelier-booking/internal/service/admin"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide."
	msgInvalidStatus      = "Le statut doit être « new » ou « handled »."
	msgMessageNotFound    = "Message introuvable."
	msgCannotList         = "Impossible de récupérer les messages de contact."
	msgCannotUpdate       = "Impossible de mettre à jour le message."
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

// List GET /api/admin/contact
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListContactMessages(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/contact - Failed to list messages: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgCannotList)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, listFromDomain(list))
}

// UpdateStatus PATCH /api/admin/contact/{id}
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/contact/%s - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	msg, err := h.service.UpdateContactStatus(r.Context(), id, req.Status)
	if err != nil {
		h.respondError(w, "PATCH /admin/contact/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, fromDomain(msg))
}

// Delete DELETE /api/admin/contact/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteContactMessage(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/contact/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/contact/%s - Message deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, admin.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidStatus)
	case errors.Is(err, admin.ErrMessageNotFound):
		handlers.RespondNotFound(w, msgMessageNotFound)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgCannotUpdate)
	}
}
