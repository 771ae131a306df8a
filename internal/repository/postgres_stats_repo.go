package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/orderviewer/internal/model"
)

// PostgresStatsRepo はPostgreSQLを使用したテーブル件数リポジトリ。
type PostgresStatsRepo struct {
	db *sql.DB
}

// NewPostgresStatsRepo はPostgresStatsRepoを生成する。
func NewPostgresStatsRepo(db *sql.DB) *PostgresStatsRepo {
	return &PostgresStatsRepo{db: db}
}

// Counts は各テーブルの件数を1ステートメントで取得する。
func (r *PostgresStatsRepo) Counts(ctx context.Context) (*model.DatabaseStats, error) {
	stats := &model.DatabaseStats{}
	err := r.db.QueryRowContext(ctx,
		`SELECT
		    (SELECT COUNT(*) FROM users),
		    (SELECT COUNT(*) FROM orders),
		    (SELECT COUNT(*) FROM products),
		    (SELECT COUNT(*) FROM order_items),
		    (SELECT COUNT(*) FROM distribution_centers)`,
	).Scan(
		&stats.UsersCount,
		&stats.OrdersCount,
		&stats.ProductsCount,
		&stats.OrderItemsCount,
		&stats.DistributionCentersCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count tables: %w", err)
	}
	return stats, nil
}

// compile-time interface check
var _ StatsRepository = (*PostgresStatsRepo)(nil)
