package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-blog-sync/internal/utils"
	"github.com/MKhiriev/go-blog-sync/models"
)

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q, err := models.ParseQuery(chi.URLParam(r, "collection"), r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	docs, err := h.store.List(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DocumentList{Documents: docs}, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	write, err := decodeWrite(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.store.Create(r.Context(), actorFromRequest(r), chi.URLParam(r, "collection"), write)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CreatedDocument{ID: id}, http.StatusCreated)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	write, err := decodeWrite(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.store.Update(r.Context(), actorFromRequest(r), chi.URLParam(r, "collection"), chi.URLParam(r, "id"), write)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeWrite(r *http.Request) (models.Write, error) {
	var write models.Write
	if err := json.NewDecoder(r.Body).Decode(&write); err != nil {
		return models.Write{}, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return write, nil
}
