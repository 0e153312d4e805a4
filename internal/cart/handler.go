package cart

import (
	"errors"
	"net/http"

	"gadgetshop-be/internal/logger"
	"gadgetshop-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves one list kind. The cart and wishlist routes each get their own.
type Handler struct {
	svc  Service
	kind Kind
}

func NewHandler(svc Service, kind Kind) *Handler {
	return &Handler{svc: svc, kind: kind}
}

// Routes mounts PATCH /, GET /{userId} and PATCH /remove.
func (h *Handler) Routes(r chi.Router) {
	r.Patch("/", h.Add)
	r.Get("/{userId}", h.List)
	r.Patch("/remove", h.Remove)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var input AddItemInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.AddItem(r.Context(), h.kind, input)
	if err != nil {
		h.writeError(w, r, err, "Failed to add item")
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.GetItems(r.Context(), h.kind, chi.URLParam(r, "userId"))
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch items")
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	var input RemoveItemInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.RemoveItem(r.Context(), h.kind, input)
	if err != nil {
		h.writeError(w, r, err, "Failed to remove item")
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, utils.ErrInvalidID),
		errors.Is(err, ErrUserEmailRequired),
		errors.Is(err, ErrInvalidKind):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromCtx(r.Context()).Error(fallback,
			zap.String("kind", string(h.kind)),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}
