package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/orderviewer/internal/metrics"
	"github.com/hitoshi/orderviewer/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Search(ctx context.Context, params model.UserSearchParams) ([]model.User, error)
	SearchLegacy(ctx context.Context, email, firstName, lastName, city string) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserHandler はユーザー参照のHTTPハンドラー。
type UserHandler struct {
	errorResponder
	users  UserServiceInterface
	orders OrderServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
// ユーザー別注文一覧・注文サマリーのためにOrderServiceInterfaceも受け取る。
func NewUserHandler(users UserServiceInterface, orders OrderServiceInterface, collector metrics.MetricsCollector) *UserHandler {
	return &UserHandler{
		errorResponder: newErrorResponder(collector),
		users:          users,
		orders:         orders,
	}
}

// Search はユーザーを部分一致（OR条件）で検索する。
// GET /api/users/search?email&first_name&last_name&city&phone&skip&limit
//
// phone・skip・limitがいずれも空の場合は旧形式の検索として最大50件を返す。
// `limit=` のような値なしの指定は未指定として扱う。
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	skip, apiErr := queryInt(r, "skip")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	limit, apiErr := queryInt(r, "limit")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	params := model.UserSearchParams{
		Email:     queryString(r, "email"),
		FirstName: queryString(r, "first_name"),
		LastName:  queryString(r, "last_name"),
		City:      queryString(r, "city"),
		Phone:     queryString(r, "phone"),
		Skip:      skip,
		Limit:     limit,
	}

	var users []model.User
	var err error
	if params.Phone != "" || queryString(r, "skip") != "" || queryString(r, "limit") != "" {
		users, err = h.users.Search(r.Context(), params)
	} else {
		users, err = h.users.SearchLegacy(r.Context(), params.Email, params.FirstName, params.LastName, params.City)
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, toUserResponses(users))
}

// Count はユーザーの総数を返す。
// GET /api/users/count
func (h *UserHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.users.Count(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, countResponse{Count: n})
}

// Lookup はメールアドレスの完全一致でユーザーを返す。
// GET /api/users/lookup?email=
func (h *UserHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	email := queryString(r, "email")
	if email == "" {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidParameterError("email", "is required"))
		return
	}

	u, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toUserResponse(u))
}

// GetUser は指定IDのユーザーを返す。
// GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toUserResponse(u))
}

// ListOrders はユーザーの注文一覧を返す。
// GET /api/users/{id}/orders?skip&limit
//
// 注文が0件の場合は404を返す。ユーザー自体が存在しない場合はUSER_NOT_FOUND、
// 存在するが注文がない場合はORDERS_NOT_FOUNDで区別する。
func (h *UserHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	skip, apiErr := queryInt(r, "skip")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	limit, apiErr := queryInt(r, "limit")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	orders, err := h.orders.GetUserOrders(r.Context(), id, skip, limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if len(orders) == 0 {
		exists, err := h.users.Exists(r.Context(), id)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		if !exists {
			h.writeAPIErrorResponse(w, http.StatusNotFound, model.NewUserNotFoundError(chi.URLParam(r, "id")))
			return
		}
		h.writeAPIErrorResponse(w, http.StatusNotFound, model.NewOrdersNotFoundError())
		return
	}

	writeJSON(w, toOrderWithUserResponses(orders))
}

// OrderSummary はユーザーの注文サマリーを返す。注文0件でも200を返す。
// GET /api/users/{id}/order-summary
func (h *UserHandler) OrderSummary(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		h.writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	summary, err := h.orders.GetUserOrderSummary(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toUserOrderSummaryResponse(summary))
}

func mountUserRoutes(r chi.Router, h *UserHandler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/search", h.Search)
		r.Get("/count", h.Count)
		r.Get("/lookup", h.Lookup)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Get("/orders", h.ListOrders)
			r.Get("/order-summary", h.OrderSummary)
		})
	})
}
