package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/orderviewer/internal/metrics"
	"github.com/hitoshi/orderviewer/internal/model"
)

// OrderServiceInterface は注文ハンドラーが必要とするサービスインターフェース。
type OrderServiceInterface interface {
	GetUserOrders(ctx context.Context, userID int64, skip, limit int) ([]model.OrderView, error)
	GetOrderByID(ctx context.Context, orderID int64) (*model.OrderDetail, error)
	GetOrdersByStatus(ctx context.Context, status string, limit int) ([]model.OrderView, error)
	GetOrderItems(ctx context.Context, orderID int64) ([]model.OrderItemView, error)
	GetOrderItemsWithTotals(ctx context.Context, orderID int64) (*model.OrderItemsWithTotals, error)
	GetUserOrderSummary(ctx context.Context, userID int64) (*model.UserOrderSummary, error)
	OrderExists(ctx context.Context, orderID int64) (bool, error)
}

// OrderHandler は注文参照のHTTPハンドラー。
type OrderHandler struct {
	errorResponder
	orders OrderServiceInterface
}

// NewOrderHandler はOrderHandlerを生成する。
func NewOrderHandler(orders OrderServiceInterface, collector metrics.MetricsCollector) *OrderHandler {
	return &OrderHandler{
		errorResponder: newErrorResponder(collector),
		orders:         orders,
	}
}

// ListByStatus はステータスが完全一致する注文一覧を返す。
// GET /api/orders?status=&limit=
func (h *OrderHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := queryString(r, "status")
	if status == "" {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidParameterError("status", "is required"))
		return
	}
	limit, apiErr := queryInt(r, "limit")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	orders, err := h.orders.GetOrdersByStatus(r.Context(), status, limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toOrderWithUserResponses(orders))
}

// GetOrder は注文者・物流拠点・明細を含む注文詳細を返す。
// GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	detail, err := h.orders.GetOrderByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toOrderDetailResponse(detail))
}

// ListItems は注文明細を商品付きで返す。
// GET /api/orders/{id}/items
//
// 明細が0件の場合は404を返す。注文自体が存在しない場合はORDER_NOT_FOUND、
// 存在するが明細がない場合はORDER_ITEMS_NOT_FOUNDで区別する。
func (h *OrderHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	items, err := h.orders.GetOrderItems(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if len(items) == 0 {
		exists, err := h.orders.OrderExists(r.Context(), id)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		if !exists {
			h.writeAPIErrorResponse(w, http.StatusNotFound, model.NewOrderNotFoundError(chi.URLParam(r, "id")))
			return
		}
		h.writeAPIErrorResponse(w, http.StatusNotFound, model.NewOrderItemsNotFoundError())
		return
	}

	writeJSON(w, toOrderItemResponses(items))
}

// ItemsSummary は注文明細と集計値を返す。明細0件の注文は集計0で200を返す。
// GET /api/orders/{id}/items/summary
func (h *OrderHandler) ItemsSummary(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	totals, err := h.orders.GetOrderItemsWithTotals(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toOrderItemsWithTotalsResponse(totals))
}

func mountOrderRoutes(r chi.Router, h *OrderHandler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.ListByStatus)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetOrder)
			r.Get("/items", h.ListItems)
			r.Get("/items/summary", h.ItemsSummary)
		})
	})
}
