package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
	"github.com/ShababulAlam/quantum-ecommerce/internal/service"
)

type ProductCatalog interface {
	List(ctx context.Context, filter domain.ProductFilter) (*service.ProductPage, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

type ProductHandler struct {
	products ProductCatalog
	logger   *zap.Logger
}

func NewProductHandler(products ProductCatalog, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Search:       q.Get("search"),
		FeaturedOnly: q.Get("featured") == "true",
		SortBy:       q.Get("sort"),
		SortDesc:     q.Get("order") != "asc",
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PerPage, _ = strconv.Atoi(q.Get("limit"))

	page, err := h.products.List(r.Context(), filter)
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.products.GetBySlug(r.Context(), slug)
	if err != nil {
		serviceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}
