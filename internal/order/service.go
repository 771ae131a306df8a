// Package order は注文・注文明細参照のドメインロジックを提供する。
package order

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/hitoshi/orderviewer/internal/model"
	"github.com/hitoshi/orderviewer/internal/repository"
)

const (
	// DefaultUserOrdersLimit はユーザー別注文一覧の既定件数。
	DefaultUserOrdersLimit = 50
	// DefaultStatusLimit はステータス別注文一覧の既定件数。
	DefaultStatusLimit = 100
	// MaxListLimit は一覧取得の上限件数。
	MaxListLimit = 1000
)

// Service は注文参照のサービス層。
// 注文一覧・注文詳細・明細集計・ユーザー別注文サマリーを提供する。
type Service struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.OrderItemRepository
	userRepo  repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	userRepo repository.UserRepository,
) *Service {
	return &Service{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
	}
}

// GetUserOrders はユーザーの注文を物流拠点付きでorder_date降順に返す。
// 注文がない場合は空スライスを返す。
func (s *Service) GetUserOrders(ctx context.Context, userID int64, skip, limit int) ([]model.OrderView, error) {
	if skip < 0 {
		skip = 0
	}
	limit = normalizeLimit(limit, DefaultUserOrdersLimit)

	orders, err := s.orderRepo.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの注文一覧の取得に失敗しました: %w", err)
	}
	return orders, nil
}

// GetOrderByID は注文者・物流拠点・全明細を解決した注文詳細を返す。
// 注文が存在しない場合はORDER_NOT_FOUNDを返す。
func (s *Service) GetOrderByID(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	view, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("注文の取得に失敗しました: %w", err)
	}
	if view == nil {
		return nil, model.NewOrderNotFoundError(strconv.FormatInt(orderID, 10))
	}

	items, err := s.itemRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("注文明細の取得に失敗しました: %w", err)
	}

	return &model.OrderDetail{OrderView: *view, Items: items}, nil
}

// GetOrdersByStatus はステータスが完全一致する注文をorder_date降順に返す。
func (s *Service) GetOrdersByStatus(ctx context.Context, status string, limit int) ([]model.OrderView, error) {
	limit = normalizeLimit(limit, DefaultStatusLimit)

	orders, err := s.orderRepo.ListByStatus(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("ステータス別注文一覧の取得に失敗しました: %w", err)
	}
	return orders, nil
}

// GetOrderItems は注文の全明細を商品付きで返す。明細がない場合は空スライス。
func (s *Service) GetOrderItems(ctx context.Context, orderID int64) ([]model.OrderItemView, error) {
	items, err := s.itemRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("注文明細の取得に失敗しました: %w", err)
	}
	return items, nil
}

// GetOrderItemsWithTotals は注文明細と集計値を返す。
// 明細が0件の注文は集計値すべて0で返し、注文自体が存在しない場合はORDER_NOT_FOUNDを返す。
func (s *Service) GetOrderItemsWithTotals(ctx context.Context, orderID int64) (*model.OrderItemsWithTotals, error) {
	items, err := s.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		exists, err := s.OrderExists(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, model.NewOrderNotFoundError(strconv.FormatInt(orderID, 10))
		}
	}

	return &model.OrderItemsWithTotals{
		OrderID: orderID,
		Items:   items,
		Summary: SummarizeItems(items),
	}, nil
}

// GetUserOrderSummary はユーザーの全注文と合計金額・最新注文日時を返す。
// 注文がないユーザーは件数0・合計0・最新注文日時nilとなる。
func (s *Service) GetUserOrderSummary(ctx context.Context, userID int64) (*model.UserOrderSummary, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if u == nil {
		return nil, model.NewUserNotFoundError(strconv.FormatInt(userID, 10))
	}

	orders, err := s.orderRepo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの注文一覧の取得に失敗しました: %w", err)
	}

	summary := &model.UserOrderSummary{
		UserID:      userID,
		TotalOrders: len(orders),
		Orders:      orders,
	}

	var spent float64
	for _, o := range orders {
		spent += o.TotalAmount
	}
	summary.TotalSpent = roundMoney(spent)

	// ordersはorder_date降順なので先頭が最新
	if len(orders) > 0 {
		latest := orders[0].OrderDate
		summary.LatestOrderDate = &latest
	}

	slog.Debug("注文サマリーを集計しました",
		slog.Int64("user_id", userID),
		slog.Int("total_orders", summary.TotalOrders),
	)

	return summary, nil
}

// OrderExists は指定IDの注文が存在するかを返す。
func (s *Service) OrderExists(ctx context.Context, orderID int64) (bool, error) {
	exists, err := s.orderRepo.Exists(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("注文の存在確認に失敗しました: %w", err)
	}
	return exists, nil
}

// SummarizeItems は明細の数量合計・金額合計・行数を計算する。
// 金額合計は数量×単価の総和を小数第2位で丸めた値。
func SummarizeItems(items []model.OrderItemView) model.ItemsSummary {
	var summary model.ItemsSummary
	var amount float64
	for _, it := range items {
		summary.TotalItems += it.Quantity
		amount += float64(it.Quantity) * it.Price
	}
	summary.TotalAmount = roundMoney(amount)
	summary.ItemCount = len(items)
	return summary
}

// roundMoney は金額を小数第2位に丸める（0から遠い方へ）。
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
