package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hitoshi/orderviewer/internal/model"
)

const productColumns = `id, name, description, price, category, sku`

// PostgresProductRepo はPostgreSQLを使用した商品リポジトリ。
type PostgresProductRepo struct {
	db *sql.DB
}

// NewPostgresProductRepo はPostgresProductRepoを生成する。
func NewPostgresProductRepo(db *sql.DB) *PostgresProductRepo {
	return &PostgresProductRepo{db: db}
}

// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
func (r *PostgresProductRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`,
		id,
	)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// ListByCategory はカテゴリの部分一致で商品を取得する。
func (r *PostgresProductRepo) ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE category ILIKE $1 ORDER BY id LIMIT $2`,
		containsPattern(category), limit,
	)
}

// Search は指定された条件をすべてAND条件で結合して商品を検索する。
func (r *PostgresProductRepo) Search(ctx context.Context, params model.ProductSearchParams) ([]model.Product, error) {
	query, args := buildProductSearchQuery(params)
	return r.queryProducts(ctx, query, args...)
}

func (r *PostgresProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// buildProductSearchQuery は商品検索のSQLとパラメータを組み立てる。
// name・categoryは部分一致、min_price・max_priceは閉区間で、すべてANDで結合する。
func buildProductSearchQuery(params model.ProductSearchParams) (string, []any) {
	query := `SELECT ` + productColumns + ` FROM products`

	var conditions []string
	var args []any
	argIndex := 1

	if params.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, containsPattern(params.Name))
		argIndex++
	}
	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category ILIKE $%d", argIndex))
		args = append(args, containsPattern(params.Category))
		argIndex++
	}
	if params.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *params.MinPrice)
		argIndex++
	}
	if params.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *params.MaxPrice)
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", argIndex)
	args = append(args, params.Limit)

	return query, args
}

func scanProduct(s rowScanner) (*model.Product, error) {
	product := &model.Product{}
	var description, category sql.NullString
	err := s.Scan(
		&product.ID, &product.Name, &description, &product.Price, &category, &product.SKU,
	)
	if err != nil {
		return nil, err
	}
	product.Description = nullStringPtr(description)
	product.Category = nullStringPtr(category)
	return product, nil
}

// compile-time interface check
var _ ProductRepository = (*PostgresProductRepo)(nil)
