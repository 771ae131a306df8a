package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/orderviewer/internal/model"
)

// orderViewSelect は注文を注文者・物流拠点とJOINして取得するベースクエリ。
// 物流拠点は任意のためLEFT JOINする。
const orderViewSelect = `
	SELECT o.id, o.user_id, o.distribution_center_id, o.order_number, o.status,
	       o.total_amount, o.order_date,
	       u.id, u.email, u.first_name, u.last_name, u.phone, u.address,
	       u.city, u.country, u.created_at,
	       dc.id, dc.name, dc.latitude, dc.longitude
	FROM orders o
	JOIN users u ON u.id = o.user_id
	LEFT JOIN distribution_centers dc ON dc.id = o.distribution_center_id`

// PostgresOrderRepo はPostgreSQLを使用した注文リポジトリ。
type PostgresOrderRepo struct {
	db *sql.DB
}

// NewPostgresOrderRepo はPostgresOrderRepoを生成する。
func NewPostgresOrderRepo(db *sql.DB) *PostgresOrderRepo {
	return &PostgresOrderRepo{db: db}
}

// FindByID は指定IDの注文を注文者・物流拠点付きで取得する。見つからない場合はnilを返す。
func (r *PostgresOrderRepo) FindByID(ctx context.Context, id int64) (*model.OrderView, error) {
	row := r.db.QueryRowContext(ctx, orderViewSelect+` WHERE o.id = $1`, id)
	view, err := scanOrderView(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return view, nil
}

// Exists は指定IDの注文が存在するかを返す。
func (r *PostgresOrderRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check order existence: %w", err)
	}
	return exists, nil
}

// ListByUser はユーザーの注文をorder_date降順でskip/limit付きで返す。
func (r *PostgresOrderRepo) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.OrderView, error) {
	return r.queryOrderViews(ctx,
		orderViewSelect+` WHERE o.user_id = $1 ORDER BY o.order_date DESC, o.id DESC LIMIT $2 OFFSET $3`,
		userID, limit, skip,
	)
}

// ListAllByUser はユーザーの全注文をorder_date降順で返す。
func (r *PostgresOrderRepo) ListAllByUser(ctx context.Context, userID int64) ([]model.OrderView, error) {
	return r.queryOrderViews(ctx,
		orderViewSelect+` WHERE o.user_id = $1 ORDER BY o.order_date DESC, o.id DESC`,
		userID,
	)
}

// ListByStatus はステータスの完全一致で注文をorder_date降順で返す。
func (r *PostgresOrderRepo) ListByStatus(ctx context.Context, status string, limit int) ([]model.OrderView, error) {
	return r.queryOrderViews(ctx,
		orderViewSelect+` WHERE o.status = $1 ORDER BY o.order_date DESC, o.id DESC LIMIT $2`,
		status, limit,
	)
}

func (r *PostgresOrderRepo) queryOrderViews(ctx context.Context, query string, args ...any) ([]model.OrderView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	views := []model.OrderView{}
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return views, nil
}

func scanOrderView(s rowScanner) (*model.OrderView, error) {
	view := &model.OrderView{User: &model.User{}}
	var dcRef sql.NullInt64
	var phone, address, city, country sql.NullString
	var dcID sql.NullInt64
	var dcName sql.NullString
	var dcLat, dcLng sql.NullFloat64

	err := s.Scan(
		&view.ID, &view.UserID, &dcRef, &view.OrderNumber, &view.Status,
		&view.TotalAmount, &view.OrderDate,
		&view.User.ID, &view.User.Email, &view.User.FirstName, &view.User.LastName,
		&phone, &address, &city, &country, &view.User.CreatedAt,
		&dcID, &dcName, &dcLat, &dcLng,
	)
	if err != nil {
		return nil, err
	}

	view.DistributionCenterID = nullInt64Ptr(dcRef)
	view.User.Phone = nullStringPtr(phone)
	view.User.Address = nullStringPtr(address)
	view.User.City = nullStringPtr(city)
	view.User.Country = nullStringPtr(country)

	if dcID.Valid {
		view.DistributionCenter = &model.DistributionCenter{
			ID:        dcID.Int64,
			Name:      dcName.String,
			Latitude:  dcLat.Float64,
			Longitude: dcLng.Float64,
		}
	}

	return view, nil
}

// compile-time interface check
var _ OrderRepository = (*PostgresOrderRepo)(nil)
