package product

import (
	"errors"
	"net/http"

	"gadgetshop-be/internal/logger"
	"gadgetshop-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgProductDeleted = "Product deleted successfully"
	msgProductUpdated = "Product updated successfully"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /add-products. The route is wrapped in the token
// verifier and the seller role gate.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input NewProductInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err, "Failed to add product")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, res)
}

// Featured handles GET /products.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Featured(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch products")
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// Search handles GET /all-products.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Search(r.Context(), ParseSearchParams(r.URL.Query()))
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch products")
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

// Update handles PATCH /products/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var input UpdateProductInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), input); err != nil {
		h.writeError(w, r, err, "Failed to update product")
		return
	}
	utils.WriteMessage(w, msgProductUpdated)
}

// Delete handles DELETE /product/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err, "Failed to delete product")
		return
	}
	utils.WriteMessage(w, msgProductDeleted)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		utils.WriteJSONError(w, ErrProductNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, ErrSellerRequired):
		utils.WriteJSONError(w, "unauthorized access", http.StatusUnauthorized)
	case errors.Is(err, utils.ErrInvalidID),
		errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidStock),
		errors.Is(err, ErrNoUpdateFields):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromCtx(r.Context()).Error(fallback,
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}
