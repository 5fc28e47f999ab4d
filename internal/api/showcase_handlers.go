package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portaldev/portal-admin/internal/showcase"
)

func showcaseErrorStatus(err error) int {
	switch {
	case errors.Is(err, showcase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, showcase.ErrTitleRequired),
		errors.Is(err, showcase.ErrURLRequired),
		errors.Is(err, showcase.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ListShowcases returns showcases, optionally filtered by ?status=.
func (h *Handlers) ListShowcases(w http.ResponseWriter, r *http.Request) {
	items := h.showcases.List(r.URL.Query().Get("status"))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"showcases": items,
		"total":     len(items),
	})
}

// SubmitShowcase adds a new pending showcase.
func (h *Handlers) SubmitShowcase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Author      string   `json:"author"`
		URL         string   `json:"url"`
		Image       string   `json:"image"`
		Tags        []string `json:"tags"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := h.showcases.Submit(showcase.Input{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		URL:         req.URL,
		Image:       req.Image,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(w, showcaseErrorStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// ModerateShowcase approves or rejects a submission.
func (h *Handlers) ModerateShowcase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.showcases.SetStatus(chi.URLParam(r, "id"), req.Status); err != nil {
		respondError(w, showcaseErrorStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteShowcase removes a showcase.
func (h *Handlers) DeleteShowcase(w http.ResponseWriter, r *http.Request) {
	h.showcases.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
