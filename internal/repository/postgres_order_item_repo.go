package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/orderviewer/internal/model"
)

// PostgresOrderItemRepo はPostgreSQLを使用した注文明細リポジトリ。
type PostgresOrderItemRepo struct {
	db *sql.DB
}

// NewPostgresOrderItemRepo はPostgresOrderItemRepoを生成する。
func NewPostgresOrderItemRepo(db *sql.DB) *PostgresOrderItemRepo {
	return &PostgresOrderItemRepo{db: db}
}

// ListByOrder は注文の全明細を商品とJOINしてID昇順に返す。
func (r *PostgresOrderItemRepo) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderItemView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		        p.id, p.name, p.description, p.price, p.category, p.sku
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1
		 ORDER BY oi.id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItemView{}
	for rows.Next() {
		var item model.OrderItemView
		var description, category sql.NullString
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&item.Product.ID, &item.Product.Name, &description, &item.Product.Price,
			&category, &item.Product.SKU,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.Product.Description = nullStringPtr(description)
		item.Product.Category = nullStringPtr(category)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return items, nil
}

// compile-time interface check
var _ OrderItemRepository = (*PostgresOrderItemRepo)(nil)
