// Package user はユーザー参照のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hitoshi/orderviewer/internal/model"
	"github.com/hitoshi/orderviewer/internal/repository"
)

const (
	// DefaultSearchLimit はlimit未指定時の検索件数。
	DefaultSearchLimit = 100
	// MaxSearchLimit は1回の検索で返す最大件数。
	MaxSearchLimit = 1000
	// LegacySearchLimit は旧形式の4項目検索の上限件数。
	LegacySearchLimit = 50
)

// Service はユーザー参照のサービス層。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// GetByID は指定IDのユーザーを返す。存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if u == nil {
		return nil, model.NewUserNotFoundError(strconv.FormatInt(id, 10))
	}
	return u, nil
}

// GetByEmail はメールアドレスの完全一致でユーザーを返す。
func (s *Service) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if u == nil {
		return nil, model.NewUserNotFoundError(email)
	}
	return u, nil
}

// Search は指定項目のいずれかに部分一致するユーザーを返す。
// skipは0未満を0に丸める。limitは0以下なら既定値、MaxSearchLimit超はMaxSearchLimitにする。
func (s *Service) Search(ctx context.Context, params model.UserSearchParams) ([]model.User, error) {
	if params.Skip < 0 {
		params.Skip = 0
	}
	switch {
	case params.Limit <= 0:
		params.Limit = DefaultSearchLimit
	case params.Limit > MaxSearchLimit:
		params.Limit = MaxSearchLimit
	}

	users, err := s.userRepo.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("ユーザー検索に失敗しました: %w", err)
	}
	return users, nil
}

// SearchLegacy は電話番号とページングを持たない旧形式の検索。
// 要求件数に関わらずLegacySearchLimit件で打ち切る。
func (s *Service) SearchLegacy(ctx context.Context, email, firstName, lastName, city string) ([]model.User, error) {
	return s.Search(ctx, model.UserSearchParams{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		City:      city,
		Limit:     LegacySearchLimit,
	})
}

// Count はユーザーの総数を返す。
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.userRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("ユーザー数の取得に失敗しました: %w", err)
	}
	return n, nil
}

// Exists は指定IDのユーザーが存在するかを返す。
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	return u != nil, nil
}
