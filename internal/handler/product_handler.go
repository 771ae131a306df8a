package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/orderviewer/internal/metrics"
	"github.com/hitoshi/orderviewer/internal/model"
)

// ProductServiceInterface は商品ハンドラーが必要とするサービスインターフェース。
type ProductServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error)
	Search(ctx context.Context, params model.ProductSearchParams) ([]model.Product, error)
}

// ProductHandler は商品参照のHTTPハンドラー。
type ProductHandler struct {
	errorResponder
	products ProductServiceInterface
}

// NewProductHandler はProductHandlerを生成する。
func NewProductHandler(products ProductServiceInterface, collector metrics.MetricsCollector) *ProductHandler {
	return &ProductHandler{
		errorResponder: newErrorResponder(collector),
		products:       products,
	}
}

// Search は商品を条件のAND結合で検索する。
// GET /api/products/search?name&category&min_price&max_price&limit
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	minPrice, apiErr := queryFloat(r, "min_price")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	maxPrice, apiErr := queryFloat(r, "max_price")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	limit, apiErr := queryInt(r, "limit")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	products, err := h.products.Search(r.Context(), model.ProductSearchParams{
		Name:     queryString(r, "name"),
		Category: queryString(r, "category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Limit:    limit,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toProductResponses(products))
}

// ListByCategory はカテゴリに部分一致する商品を返す。
// GET /api/products/category/{category}?limit
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	limit, apiErr := queryInt(r, "limit")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	products, err := h.products.ListByCategory(r.Context(), chi.URLParam(r, "category"), limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toProductResponses(products))
}

// GetProduct は指定IDの商品を返す。
// GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toProductResponse(p))
}

func mountProductRoutes(r chi.Router, h *ProductHandler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/search", h.Search)
		r.Get("/category/{category}", h.ListByCategory)
		r.Get("/{id}", h.GetProduct)
	})
}
