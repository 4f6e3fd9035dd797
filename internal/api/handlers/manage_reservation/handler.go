package manage_reservation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	manageReservation "github.com/m04kA/atelier-booking/internal/usecase/manage_reservation"
)

const (
	msgInvalidRequestBody   = "Corps de requête invalide."
	msgMissingCredentials   = "Merci d'indiquer le numéro de réservation et l'adresse e-mail."
	msgMissingSession       = "Merci de choisir une nouvelle session."
	msgReservationNotFound  = "Réservation introuvable. Vérifiez le numéro et l'adresse e-mail."
	msgReservationCancelled = "Cette réservation a déjà été annulée."
	msgSessionNotFound      = "Session sélectionnée introuvable pour cette formation."
	msgSameSession          = "Votre réservation est déjà positionnée sur cette session."
	msgSessionCancelled     = "Cette session a été annulée. Merci de choisir une autre date."
	msgSessionClosed        = "Cette session est momentanément fermée aux réservations."
	msgSessionFull          = "Cette session est complète. Merci de choisir une autre date."
	msgSessionChanged       = "Votre réservation a bien été déplacée."
	msgCancelled            = "Votre réservation a bien été annulée."
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

// Lookup POST /api/reservations/manage
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/manage - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Lookup(r.Context(), manageReservation.Credentials{
		ReservationID: req.ReservationID,
		Email:         req.Email,
	})
	if err != nil {
		h.respondError(w, "POST /reservations/manage", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, lookupFromUseCase(result))
}

// ChangeSession PATCH /api/reservations/{id}
func (h *Handler) ChangeSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req ChangeSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/%s - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		handlers.RespondBadRequest(w, msgMissingSession)
		return
	}

	updated, err := h.useCase.ChangeSession(r.Context(), manageReservation.Credentials{
		ReservationID: id,
		Email:         req.Email,
	}, req.SessionID)
	if err != nil {
		h.respondError(w, "PATCH /reservations/{id}", err)
		return
	}

	h.logger.Info("PATCH /reservations/%s - Session changed: session_id=%s", id, updated.SessionID)
	handlers.RespondJSON(w, http.StatusOK, &ReservationEnvelope{
		Message:     msgSessionChanged,
		Reservation: handlers.ReservationFromDomain(updated),
	})
}

// Cancel POST /api/reservations/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/%s/cancel - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.useCase.Cancel(r.Context(), manageReservation.Credentials{
		ReservationID: id,
		Email:         req.Email,
	})
	if err != nil {
		h.respondError(w, "POST /reservations/{id}/cancel", err)
		return
	}

	h.logger.Info("POST /reservations/%s/cancel - Reservation cancelled", id)
	handlers.RespondJSON(w, http.StatusOK, &ReservationEnvelope{
		Message:     msgCancelled,
		Reservation: handlers.ReservationFromDomain(updated),
	})
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, manageReservation.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, msgMissingCredentials)

	case errors.Is(err, manageReservation.ErrReservationNotFound):
		handlers.RespondNotFound(w, msgReservationNotFound)

	case errors.Is(err, manageReservation.ErrSessionNotFound):
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, manageReservation.ErrSameSession):
		handlers.RespondBadRequest(w, msgSameSession)

	case errors.Is(err, manageReservation.ErrReservationCancelled):
		handlers.RespondConflict(w, msgReservationCancelled)

	case errors.Is(err, manageReservation.ErrSessionCancelled):
		handlers.RespondConflict(w, msgSessionCancelled)

	case errors.Is(err, manageReservation.ErrSessionClosed):
		handlers.RespondConflict(w, msgSessionClosed)

	case errors.Is(err, manageReservation.ErrSessionFull):
		handlers.RespondConflict(w, msgSessionFull)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
