package user

import (
	"errors"
	"net/http"
	"net/url"

	"gadgetshop-be/internal/logger"
	"gadgetshop-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register handles POST /users.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input RegisterInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.Register(r.Context(), input)
	if errors.Is(err, ErrUserExists) {
		utils.WriteMessage(w, ErrUserExists.Error())
		return
	}
	if err != nil {
		h.writeError(w, r, err, "Failed to create user")
		return
	}

	utils.WriteJSON(w, http.StatusOK, res)
}

// List handles GET /users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch users")
		return
	}
	utils.WriteJSON(w, http.StatusOK, users)
}

// GetByEmail handles GET /user/{email}; an unknown email yields null.
func (h *Handler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	// chi matches on the raw path, so "u%40test.com" arrives still escaped.
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		utils.WriteJSONError(w, "invalid email", http.StatusBadRequest)
		return
	}

	u, err := h.svc.GetByEmail(r.Context(), email)
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch user")
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

// UpdateRole handles PATCH /users/role/{id}.
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var input UpdateRoleInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.UpdateRole(r.Context(), chi.URLParam(r, "id"), input.Role)
	if err != nil {
		h.writeError(w, r, err, "Failed to update role")
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

// UpdateStatus handles PATCH /users/status/{id}.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input UpdateStatusInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), input.Status)
	if err != nil {
		h.writeError(w, r, err, "Failed to update status")
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

// Delete handles DELETE /users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, "Failed to delete user")
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, utils.ErrInvalidID),
		errors.Is(err, ErrEmailRequired),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidStatus):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromCtx(r.Context()).Error(fallback,
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}
