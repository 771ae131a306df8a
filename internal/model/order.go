package model

import "time"

// Order はユーザーの注文を表す。
// Statusは自由文字列（pending、shipped、completed 等）で列挙値の制約はない。
type Order struct {
	ID                   int64
	UserID               int64
	DistributionCenterID *int64
	OrderNumber          string
	Status               string
	TotalAmount          float64
	OrderDate            time.Time
}

// OrderItem は注文明細を表す。
// Priceは注文時点の単価で、商品の現在価格とは独立している。
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	Price     float64
}

// OrderView は関連エンティティを解決済みの注文。
// 注文者と物流拠点をJOINして取得される。物流拠点が未割り当ての場合はnil。
type OrderView struct {
	Order
	User               *User
	DistributionCenter *DistributionCenter
}

// OrderItemView は商品を解決済みの注文明細。
type OrderItemView struct {
	OrderItem
	Product Product
}

// OrderDetail は注文者・物流拠点・全明細を解決済みの注文詳細。
type OrderDetail struct {
	OrderView
	Items []OrderItemView
}

// ItemsSummary は注文明細の集計値。
type ItemsSummary struct {
	TotalItems  int     // 数量の合計
	TotalAmount float64 // 数量×単価の合計（小数第2位で丸め）
	ItemCount   int     // 明細行数
}

// OrderItemsWithTotals は注文明細と集計値の組。
type OrderItemsWithTotals struct {
	OrderID int64
	Items   []OrderItemView
	Summary ItemsSummary
}

// UserOrderSummary はユーザーの注文履歴の集計。
// 注文がない場合、LatestOrderDateはnil。
type UserOrderSummary struct {
	UserID          int64
	TotalOrders     int
	TotalSpent      float64
	Orders          []OrderView
	LatestOrderDate *time.Time
}

// DatabaseStats は各テーブルの件数。
type DatabaseStats struct {
	UsersCount               int64
	OrdersCount              int64
	ProductsCount            int64
	OrderItemsCount          int64
	DistributionCentersCount int64
}
