package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portaldev/portal-admin/internal/users"
)

type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func userErrorStatus(err error) int {
	switch {
	case errors.Is(err, users.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, users.ErrNameRequired),
		errors.Is(err, users.ErrEmailRequired),
		errors.Is(err, users.ErrEmailTaken),
		errors.Is(err, users.ErrInvalidRole),
		errors.Is(err, users.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ListUsers returns admin users, optionally filtered by a search query.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	var list []users.User
	if q := r.URL.Query().Get("q"); q != "" {
		list = h.users.Search(q)
	} else {
		list = h.users.List()
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"users": list,
		"total": len(list),
	})
}

// CreateUser adds a new admin user.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.users.Create(users.Input{Name: req.Name, Email: req.Email, Role: req.Role})
	if err != nil {
		respondError(w, userErrorStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// UpdateUser replaces a user's editable fields.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.users.Update(chi.URLParam(r, "id"), users.Input{Name: req.Name, Email: req.Email, Role: req.Role})
	if err != nil {
		respondError(w, userErrorStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// SetUserStatus flips a user between active and inactive.
func (h *Handlers) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.users.SetStatus(chi.URLParam(r, "id"), req.Status); err != nil {
		respondError(w, userErrorStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser removes a user.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	h.users.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
