// Package repository はデータ永続化のインターフェースとPostgreSQL実装を定義する。
//
// すべての単一取得メソッドは、該当行がない場合にエラーではなく (nil, nil) を返す。
// 一覧取得メソッドは該当行がない場合に空スライス（nilではない）を返す。
package repository

import (
	"context"

	"github.com/hitoshi/orderviewer/internal/model"
)

// UserRepository はユーザーデータの参照インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByEmail はメールアドレスの完全一致でユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Search は指定された各フィールドの部分一致（大文字小文字を区別しない）をOR条件で検索する。
	// 条件が1つも指定されていない場合は全件を対象にする。
	Search(ctx context.Context, params model.UserSearchParams) ([]model.User, error)

	// Count はユーザーの総数を返す。
	Count(ctx context.Context) (int64, error)
}

// ProductRepository は商品データの参照インターフェース。
type ProductRepository interface {
	// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Product, error)

	// ListByCategory はカテゴリの部分一致（大文字小文字を区別しない）で商品を取得する。
	ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error)

	// Search は指定された条件をすべてAND条件で結合して商品を検索する。
	Search(ctx context.Context, params model.ProductSearchParams) ([]model.Product, error)
}

// DistributionCenterRepository は物流拠点データの参照インターフェース。
type DistributionCenterRepository interface {
	// List は全物流拠点をID昇順で返す。
	List(ctx context.Context) ([]model.DistributionCenter, error)

	// FindByID は指定IDの物流拠点を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.DistributionCenter, error)
}

// OrderRepository は注文データの参照インターフェース。
// 一覧系メソッドは注文者と物流拠点をJOINで解決した状態で返す。
type OrderRepository interface {
	// FindByID は指定IDの注文を注文者・物流拠点付きで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.OrderView, error)

	// Exists は指定IDの注文が存在するかを返す。
	Exists(ctx context.Context, id int64) (bool, error)

	// ListByUser はユーザーの注文をorder_date降順でskip/limit付きで返す。
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.OrderView, error)

	// ListAllByUser はユーザーの全注文をorder_date降順で返す。
	ListAllByUser(ctx context.Context, userID int64) ([]model.OrderView, error)

	// ListByStatus はステータスの完全一致で注文をorder_date降順で返す。
	ListByStatus(ctx context.Context, status string, limit int) ([]model.OrderView, error)
}

// OrderItemRepository は注文明細データの参照インターフェース。
type OrderItemRepository interface {
	// ListByOrder は注文の全明細を商品付きでID昇順に返す。
	ListByOrder(ctx context.Context, orderID int64) ([]model.OrderItemView, error)
}

// StatsRepository はテーブル件数の参照インターフェース。
type StatsRepository interface {
	// Counts は各テーブルの件数を返す。
	Counts(ctx context.Context) (*model.DatabaseStats, error)
}
