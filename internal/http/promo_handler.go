package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/service"
)

type PromoValidator interface {
	Validate(ctx context.Context, code string, cartTotal decimal.Decimal) (*service.PromoResult, error)
}

type PromoHandler struct {
	promos PromoValidator
	logger *zap.Logger
}

func NewPromoHandler(promos PromoValidator, logger *zap.Logger) *PromoHandler {
	return &PromoHandler{promos: promos, logger: logger}
}

type ValidatePromoRequestDTO struct {
	Code      string          `json:"code"`
	CartTotal decimal.Decimal `json:"cartTotal"`
}

type ValidatePromoResponseDTO struct {
	Valid          bool            `json:"valid"`
	Code           string          `json:"code"`
	DiscountType   string          `json:"discountType"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Description    string          `json:"description,omitempty"`
}

func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidatePromoRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "Promotion code is required")
		return
	}

	result, err := h.promos.Validate(r.Context(), req.Code, req.CartTotal)
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, ValidatePromoResponseDTO{
		Valid:          true,
		Code:           result.Promo.Code,
		DiscountType:   string(result.Promo.DiscountType),
		DiscountAmount: result.DiscountAmount,
		Description:    result.Promo.Description,
	})
}
