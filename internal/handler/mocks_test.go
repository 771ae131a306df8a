package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/orderviewer/internal/model"
)

// --- モック定義 ---

type mockUserService struct {
	getByIDFn      func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn   func(ctx context.Context, email string) (*model.User, error)
	searchFn       func(ctx context.Context, params model.UserSearchParams) ([]model.User, error)
	searchLegacyFn func(ctx context.Context, email, firstName, lastName, city string) ([]model.User, error)
	countFn        func(ctx context.Context) (int64, error)
	existsFn       func(ctx context.Context, id int64) (bool, error)
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.getByEmailFn(ctx, email)
}
func (m *mockUserService) Search(ctx context.Context, params model.UserSearchParams) ([]model.User, error) {
	return m.searchFn(ctx, params)
}
func (m *mockUserService) SearchLegacy(ctx context.Context, email, firstName, lastName, city string) ([]model.User, error) {
	return m.searchLegacyFn(ctx, email, firstName, lastName, city)
}
func (m *mockUserService) Count(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}
func (m *mockUserService) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

type mockOrderService struct {
	getUserOrdersFn           func(ctx context.Context, userID int64, skip, limit int) ([]model.OrderView, error)
	getOrderByIDFn            func(ctx context.Context, orderID int64) (*model.OrderDetail, error)
	getOrdersByStatusFn       func(ctx context.Context, status string, limit int) ([]model.OrderView, error)
	getOrderItemsFn           func(ctx context.Context, orderID int64) ([]model.OrderItemView, error)
	getOrderItemsWithTotalsFn func(ctx context.Context, orderID int64) (*model.OrderItemsWithTotals, error)
	getUserOrderSummaryFn     func(ctx context.Context, userID int64) (*model.UserOrderSummary, error)
	orderExistsFn             func(ctx context.Context, orderID int64) (bool, error)
}

func (m *mockOrderService) GetUserOrders(ctx context.Context, userID int64, skip, limit int) ([]model.OrderView, error) {
	return m.getUserOrdersFn(ctx, userID, skip, limit)
}
func (m *mockOrderService) GetOrderByID(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	return m.getOrderByIDFn(ctx, orderID)
}
func (m *mockOrderService) GetOrdersByStatus(ctx context.Context, status string, limit int) ([]model.OrderView, error) {
	return m.getOrdersByStatusFn(ctx, status, limit)
}
func (m *mockOrderService) GetOrderItems(ctx context.Context, orderID int64) ([]model.OrderItemView, error) {
	return m.getOrderItemsFn(ctx, orderID)
}
func (m *mockOrderService) GetOrderItemsWithTotals(ctx context.Context, orderID int64) (*model.OrderItemsWithTotals, error) {
	return m.getOrderItemsWithTotalsFn(ctx, orderID)
}
func (m *mockOrderService) GetUserOrderSummary(ctx context.Context, userID int64) (*model.UserOrderSummary, error) {
	return m.getUserOrderSummaryFn(ctx, userID)
}
func (m *mockOrderService) OrderExists(ctx context.Context, orderID int64) (bool, error) {
	return m.orderExistsFn(ctx, orderID)
}

type mockProductService struct {
	getByIDFn        func(ctx context.Context, id int64) (*model.Product, error)
	listByCategoryFn func(ctx context.Context, category string, limit int) ([]model.Product, error)
	searchFn         func(ctx context.Context, params model.ProductSearchParams) ([]model.Product, error)
}

func (m *mockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockProductService) ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	return m.listByCategoryFn(ctx, category, limit)
}
func (m *mockProductService) Search(ctx context.Context, params model.ProductSearchParams) ([]model.Product, error) {
	return m.searchFn(ctx, params)
}

type mockCenterService struct {
	listFn    func(ctx context.Context) ([]model.DistributionCenter, error)
	getByIDFn func(ctx context.Context, id int64) (*model.DistributionCenter, error)
}

func (m *mockCenterService) List(ctx context.Context) ([]model.DistributionCenter, error) {
	return m.listFn(ctx)
}
func (m *mockCenterService) GetByID(ctx context.Context, id int64) (*model.DistributionCenter, error) {
	return m.getByIDFn(ctx, id)
}

type mockStatsService struct {
	getFn func(ctx context.Context) (*model.DatabaseStats, error)
}

func (m *mockStatsService) Get(ctx context.Context) (*model.DatabaseStats, error) {
	return m.getFn(ctx)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

// recordingCollector はハンドラーから記録されたメトリクスを保持する。
type recordingCollector struct {
	misses []string
}

func (c *recordingCollector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
}
func (c *recordingCollector) RecordLookupMiss(resource string) {
	c.misses = append(c.misses, resource)
}
func (c *recordingCollector) RecordRateLimited() {}

// --- テスト用フィクスチャ ---

func strPtr(s string) *string { return &s }

var (
	fixtureTime = time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)

	fixtureUser = model.User{
		ID:        1,
		Email:     "john.doe@example.com",
		FirstName: "John",
		LastName:  "Doe",
		Phone:     strPtr("555-0100"),
		City:      strPtr("Austin"),
		Country:   strPtr("USA"),
		CreatedAt: fixtureTime,
	}

	fixtureCenter = model.DistributionCenter{ID: 1, Name: "Memphis TN", Latitude: 35.1174, Longitude: -89.9711}

	fixtureProduct = model.Product{
		ID:          1,
		Name:        "Wireless Mouse",
		Description: strPtr("Ergonomic mouse"),
		Price:       25.50,
		Category:    strPtr("Electronics"),
		SKU:         "SKU-1",
	}
)

func fixtureOrderView() model.OrderView {
	dcID := fixtureCenter.ID
	u := fixtureUser
	c := fixtureCenter
	return model.OrderView{
		Order: model.Order{
			ID:                   1,
			UserID:               1,
			DistributionCenterID: &dcID,
			OrderNumber:          "ORD-1",
			Status:               "completed",
			TotalAmount:          60.99,
			OrderDate:            fixtureTime,
		},
		User:               &u,
		DistributionCenter: &c,
	}
}

func fixtureItems() []model.OrderItemView {
	return []model.OrderItemView{
		{
			OrderItem: model.OrderItem{ID: 1, OrderID: 1, ProductID: 1, Quantity: 2, Price: 25.50},
			Product:   fixtureProduct,
		},
	}
}

// --- ヘルパー ---

// withChiURLParam はchiのURLパラメータをリクエストコンテキストに設定する。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// parseAPIErrorResponse はレスポンスボディからAPIErrorレスポンスをパースするヘルパー。
func parseAPIErrorResponse(t *testing.T, w *httptest.ResponseRecorder) apiErrorResponse {
	t.Helper()
	var result apiErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return result
}

// assertAPIError はステータスコードとエラーコードを検証する。
func assertAPIError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Errorf("status = %d, want %d", w.Code, status)
	}
	if got := parseAPIErrorResponse(t, w).Code; got != code {
		t.Errorf("code = %q, want %q", got, code)
	}
}
