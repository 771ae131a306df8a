package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/orderviewer/internal/metrics"
	"github.com/hitoshi/orderviewer/internal/model"
)

// CenterServiceInterface は物流拠点ハンドラーが必要とするサービスインターフェース。
type CenterServiceInterface interface {
	List(ctx context.Context) ([]model.DistributionCenter, error)
	GetByID(ctx context.Context, id int64) (*model.DistributionCenter, error)
}

// CenterHandler は物流拠点参照のHTTPハンドラー。
type CenterHandler struct {
	errorResponder
	centers CenterServiceInterface
}

// NewCenterHandler はCenterHandlerを生成する。
func NewCenterHandler(centers CenterServiceInterface, collector metrics.MetricsCollector) *CenterHandler {
	return &CenterHandler{
		errorResponder: newErrorResponder(collector),
		centers:        centers,
	}
}

// List は全物流拠点を返す。
// GET /api/distribution-centers
func (h *CenterHandler) List(w http.ResponseWriter, r *http.Request) {
	centers, err := h.centers.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toDistributionCenterResponses(centers))
}

// GetCenter は指定IDの物流拠点を返す。
// GET /api/distribution-centers/{id}
func (h *CenterHandler) GetCenter(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	c, err := h.centers.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toDistributionCenterResponse(c))
}

func mountCenterRoutes(r chi.Router, h *CenterHandler) {
	r.Route("/api/distribution-centers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetCenter)
	})
}
