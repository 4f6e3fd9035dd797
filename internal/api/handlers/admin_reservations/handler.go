package admin_reservations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	"github.com/m04kA/atelier-booking/internal/service/admin"
)

const (
	msgInvalidRequestBody  = "Corps de requête invalide."
	msgInvalidChange       = "Merci d'indiquer une session ou un statut valide."
	msgReservationNotFound = "Réservation introuvable."
	msgFormationNotFound   = "Formation introuvable."
	msgSessionNotFound     = "Session introuvable."
	msgSessionCancelled    = "La session cible a été annulée."
	msgSessionClosed       = "La session cible est fermée aux réservations."
	msgSessionFull         = "La session cible est complète."
	msgCannotList          = "Impossible de lister les réservations."
	msgCannotUpdate        = "Impossible de mettre à jour la réservation."
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

// List GET /api/admin/reservations
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListReservations(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/reservations - Failed to list reservations: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgCannotList)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, &ListResponse{Reservations: handlers.ReservationsFromDomain(list)})
}

// Update PATCH /api/admin/reservations/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/reservations/%s - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.ReassignOrChangeStatus(r.Context(), id, req.toChange())
	if err != nil {
		h.respondError(w, "PATCH /admin/reservations/{id}", err)
		return
	}

	h.logger.Info("PATCH /admin/reservations/%s - Updated: session_id=%s, status=%s", id, updated.SessionID, updated.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.ReservationFromDomain(updated))
}

// Delete DELETE /api/admin/reservations/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteReservation(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/reservations/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/reservations/%s - Reservation deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, admin.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidChange)
	case errors.Is(err, admin.ErrReservationNotFound):
		handlers.RespondNotFound(w, msgReservationNotFound)
	case errors.Is(err, admin.ErrFormationNotFound):
		handlers.RespondNotFound(w, msgFormationNotFound)
	case errors.Is(err, admin.ErrSessionNotFound):
		handlers.RespondNotFound(w, msgSessionNotFound)
	case errors.Is(err, admin.ErrSessionCancelled):
		handlers.RespondConflict(w, msgSessionCancelled)
	case errors.Is(err, admin.ErrSessionClosed):
		handlers.RespondConflict(w, msgSessionClosed)
	case errors.Is(err, admin.ErrSessionFull):
		handlers.RespondConflict(w, msgSessionFull)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgCannotUpdate)
	}
}
