package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/orderviewer/internal/model"
)

// PostgresDistributionCenterRepo はPostgreSQLを使用した物流拠点リポジトリ。
type PostgresDistributionCenterRepo struct {
	db *sql.DB
}

// NewPostgresDistributionCenterRepo はPostgresDistributionCenterRepoを生成する。
func NewPostgresDistributionCenterRepo(db *sql.DB) *PostgresDistributionCenterRepo {
	return &PostgresDistributionCenterRepo{db: db}
}

// List は全物流拠点をID昇順で返す。
func (r *PostgresDistributionCenterRepo) List(ctx context.Context) ([]model.DistributionCenter, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, latitude, longitude FROM distribution_centers ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list distribution centers: %w", err)
	}
	defer rows.Close()

	centers := []model.DistributionCenter{}
	for rows.Next() {
		var c model.DistributionCenter
		if err := rows.Scan(&c.ID, &c.Name, &c.Latitude, &c.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan distribution center: %w", err)
		}
		centers = append(centers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate distribution centers: %w", err)
	}

	return centers, nil
}

// FindByID は指定IDの物流拠点を取得する。見つからない場合はnilを返す。
func (r *PostgresDistributionCenterRepo) FindByID(ctx context.Context, id int64) (*model.DistributionCenter, error) {
	c := &model.DistributionCenter{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, latitude, longitude FROM distribution_centers WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Latitude, &c.Longitude)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find distribution center by ID: %w", err)
	}

	return c, nil
}

// compile-time interface check
var _ DistributionCenterRepository = (*PostgresDistributionCenterRepo)(nil)
