package auth

import (
	"net/http"

	"gadgetshop-be/internal/logger"
	"gadgetshop-be/internal/utils"

	"go.uber.org/zap"
)

// IssuerKeyHeader carries the shared key when issuance is restricted.
const IssuerKeyHeader = "X-Issuer-Key"

type TokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	issuer *Issuer
}

func NewHandler(issuer *Issuer) *Handler {
	return &Handler{issuer: issuer}
}

// Issue handles POST /authentication: the request body becomes the claim set.
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(zap.String("layer", "handler"), zap.String("method", "IssueToken"))

	if err := h.issuer.CheckIssuerKey(r.Header.Get(IssuerKeyHeader)); err != nil {
		log.Warn("token issuance rejected", zap.Error(err))
		utils.WriteJSONError(w, ErrUnauthenticated.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := utils.DecodeJSONObject(r)
	if err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.issuer.Issue(claims)
	if err != nil {
		log.Error("failed to sign token", zap.Error(err))
		utils.WriteJSONError(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	log.Info("token issued", zap.String("email", EmailFromClaims(claims)))
	utils.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}
