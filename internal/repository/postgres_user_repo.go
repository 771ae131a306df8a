package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hitoshi/orderviewer/internal/model"
)

const userColumns = `id, email, first_name, last_name, phone, address, city, country, created_at`

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByEmail はメールアドレスの完全一致でユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// Search は指定された各フィールドの部分一致をOR条件で検索する。
// 結果はid昇順でskip件読み飛ばした後、limit件に切り詰められる。
func (r *PostgresUserRepo) Search(ctx context.Context, params model.UserSearchParams) ([]model.User, error) {
	query, args := buildUserSearchQuery(params)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// Count はユーザーの総数を返す。
func (r *PostgresUserRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// buildUserSearchQuery はユーザー検索のSQLとパラメータを組み立てる。
// 指定されたフィールドごとに ILIKE 条件を作り、OR で結合する。
func buildUserSearchQuery(params model.UserSearchParams) (string, []any) {
	query := `SELECT ` + userColumns + ` FROM users`

	var conditions []string
	var args []any
	argIndex := 1

	fields := []struct {
		column string
		value  string
	}{
		{"email", params.Email},
		{"first_name", params.FirstName},
		{"last_name", params.LastName},
		{"city", params.City},
		{"phone", params.Phone},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", f.column, argIndex))
		args = append(args, containsPattern(f.value))
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " OR ")
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, params.Limit, params.Skip)

	return query, args
}

func scanUser(s rowScanner) (*model.User, error) {
	user := &model.User{}
	var phone, address, city, country sql.NullString
	err := s.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&phone, &address, &city, &country, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Phone = nullStringPtr(phone)
	user.Address = nullStringPtr(address)
	user.City = nullStringPtr(city)
	user.Country = nullStringPtr(country)
	return user, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
