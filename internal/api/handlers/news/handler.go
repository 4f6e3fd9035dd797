package news

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/atelier-booking/internal/api/handlers"
	"github.com/m04kA/atelier-booking/internal/service/admin"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide."
	msgTitleRequired      = "Le titre de l'article est obligatoire."
	msgNewsNotFound       = "Article introuvable."
	msgCannotSave         = "Impossible d'enregistrer l'article pour le moment."
)

type Handler struct {
	reader NewsReader
	admin  AdminService
	logger Logger
}

func NewHandler(reader NewsReader, admin AdminService, logger Logger) *Handler {
	return &Handler{
		reader: reader,
		admin:  admin,
		logger: logger,
	}
}

// List GET /api/nknews
// Ошибка чтения отдается как пустая лента.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.reader.List(r.Context())
	if err != nil {
		h.logger.Error("GET /nknews - Failed to read news: %v", err)
		items = nil
	}
	handlers.RespondJSON(w, http.StatusOK, listFromDomain(items))
}

// Create POST /api/nknews
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNewsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /nknews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.admin.CreateNews(r.Context(), req.Title, req.Content, req.Image)
	if err != nil {
		h.respondError(w, "POST /nknews", err)
		return
	}

	h.logger.Info("POST /nknews - News item published: id=%s", item.ID)
	handlers.RespondJSON(w, http.StatusCreated, fromDomain(item))
}

// Update PATCH /api/nknews/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateNewsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /nknews/%s - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.admin.UpdateNews(r.Context(), id, req.toPatch())
	if err != nil {
		h.respondError(w, "PATCH /nknews/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, fromDomain(item))
}

// Delete DELETE /api/nknews/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.admin.DeleteNews(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /nknews/{id}", err)
		return
	}

	h.logger.Info("DELETE /nknews/%s - News item deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, admin.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, msgTitleRequired)
	case errors.Is(err, admin.ErrNewsNotFound):
		handlers.RespondNotFound(w, msgNewsNotFound)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgCannotSave)
	}
}
