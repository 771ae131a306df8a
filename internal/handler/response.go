package handler

import (
	"time"

	"github.com/hitoshi/orderviewer/internal/model"
)

// レスポンス型はストレージ表現から独立したAPIの転送表現。
// 関連エンティティは1階層だけ埋め込む。

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	City      *string   `json:"city"`
	Country   *string   `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Category    *string `json:"category"`
	SKU         string  `json:"sku"`
}

type distributionCenterResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// orderResponse は注文と解決済みの物流拠点。
type orderResponse struct {
	ID                   int64                       `json:"id"`
	UserID               int64                       `json:"user_id"`
	DistributionCenterID *int64                      `json:"distribution_center_id"`
	OrderNumber          string                      `json:"order_number"`
	Status               string                      `json:"status"`
	TotalAmount          float64                     `json:"total_amount"`
	OrderDate            time.Time                   `json:"order_date"`
	DistributionCenter   *distributionCenterResponse `json:"distribution_center"`
}

// orderWithUserResponse は注文者を埋め込んだ注文。一覧系で使う。
type orderWithUserResponse struct {
	orderResponse
	User *userResponse `json:"user"`
}

// orderDetailResponse は注文者と全明細を埋め込んだ注文詳細。
type orderDetailResponse struct {
	orderResponse
	User  *userResponse       `json:"user"`
	Items []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Product   productResponse `json:"product"`
}

type itemsSummaryResponse struct {
	TotalItems  int     `json:"total_items"`
	TotalAmount float64 `json:"total_amount"`
	ItemCount   int     `json:"item_count"`
}

type orderItemsWithTotalsResponse struct {
	OrderID int64                `json:"order_id"`
	Items   []orderItemResponse  `json:"items"`
	Summary itemsSummaryResponse `json:"summary"`
}

type userOrderSummaryResponse struct {
	UserID          int64                   `json:"user_id"`
	TotalOrders     int                     `json:"total_orders"`
	TotalSpent      float64                 `json:"total_spent"`
	Orders          []orderWithUserResponse `json:"orders"`
	LatestOrderDate *time.Time              `json:"latest_order_date"`
}

type databaseStatsResponse struct {
	UsersCount               int64 `json:"users_count"`
	OrdersCount              int64 `json:"orders_count"`
	ProductsCount            int64 `json:"products_count"`
	OrderItemsCount          int64 `json:"order_items_count"`
	DistributionCentersCount int64 `json:"distribution_centers_count"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

func toUserResponse(u *model.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Address:   u.Address,
		City:      u.City,
		Country:   u.Country,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []model.User) []userResponse {
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = *toUserResponse(&users[i])
	}
	return out
}

func toProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		SKU:         p.SKU,
	}
}

func toProductResponses(products []model.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i := range products {
		out[i] = toProductResponse(&products[i])
	}
	return out
}

func toDistributionCenterResponse(c *model.DistributionCenter) *distributionCenterResponse {
	if c == nil {
		return nil
	}
	return &distributionCenterResponse{
		ID:        c.ID,
		Name:      c.Name,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}

func toDistributionCenterResponses(centers []model.DistributionCenter) []distributionCenterResponse {
	out := make([]distributionCenterResponse, len(centers))
	for i := range centers {
		out[i] = *toDistributionCenterResponse(&centers[i])
	}
	return out
}

func toOrderResponse(o *model.OrderView) orderResponse {
	return orderResponse{
		ID:                   o.ID,
		UserID:               o.UserID,
		DistributionCenterID: o.DistributionCenterID,
		OrderNumber:          o.OrderNumber,
		Status:               o.Status,
		TotalAmount:          o.TotalAmount,
		OrderDate:            o.OrderDate,
		DistributionCenter:   toDistributionCenterResponse(o.DistributionCenter),
	}
}

func toOrderWithUserResponses(orders []model.OrderView) []orderWithUserResponse {
	out := make([]orderWithUserResponse, len(orders))
	for i := range orders {
		out[i] = orderWithUserResponse{
			orderResponse: toOrderResponse(&orders[i]),
			User:          toUserResponse(orders[i].User),
		}
	}
	return out
}

func toOrderDetailResponse(d *model.OrderDetail) orderDetailResponse {
	return orderDetailResponse{
		orderResponse: toOrderResponse(&d.OrderView),
		User:          toUserResponse(d.User),
		Items:         toOrderItemResponses(d.Items),
	}
}

func toOrderItemResponses(items []model.OrderItemView) []orderItemResponse {
	out := make([]orderItemResponse, len(items))
	for i, it := range items {
		out[i] = orderItemResponse{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Product:   toProductResponse(&it.Product),
		}
	}
	return out
}

func toOrderItemsWithTotalsResponse(t *model.OrderItemsWithTotals) orderItemsWithTotalsResponse {
	return orderItemsWithTotalsResponse{
		OrderID: t.OrderID,
		Items:   toOrderItemResponses(t.Items),
		Summary: itemsSummaryResponse{
			TotalItems:  t.Summary.TotalItems,
			TotalAmount: t.Summary.TotalAmount,
			ItemCount:   t.Summary.ItemCount,
		},
	}
}

func toUserOrderSummaryResponse(s *model.UserOrderSummary) userOrderSummaryResponse {
	return userOrderSummaryResponse{
		UserID:          s.UserID,
		TotalOrders:     s.TotalOrders,
		TotalSpent:      s.TotalSpent,
		Orders:          toOrderWithUserResponses(s.Orders),
		LatestOrderDate: s.LatestOrderDate,
	}
}

func toDatabaseStatsResponse(s *model.DatabaseStats) *databaseStatsResponse {
	if s == nil {
		return nil
	}
	return &databaseStatsResponse{
		UsersCount:               s.UsersCount,
		OrdersCount:              s.OrdersCount,
		ProductsCount:            s.ProductsCount,
		OrderItemsCount:          s.OrderItemsCount,
		DistributionCentersCount: s.DistributionCentersCount,
	}
}
