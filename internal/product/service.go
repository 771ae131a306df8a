// Package product は商品参照のドメインロジックを提供する。
package product

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hitoshi/orderviewer/internal/model"
	"github.com/hitoshi/orderviewer/internal/repository"
)

const (
	// DefaultLimit はカテゴリ別一覧・検索の既定件数。
	DefaultLimit = 50
	// MaxLimit は一覧取得の上限件数。
	MaxLimit = 1000
)

// Service は商品参照のサービス層。
type Service struct {
	productRepo repository.ProductRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(productRepo repository.ProductRepository) *Service {
	return &Service{productRepo: productRepo}
}

// GetByID は指定IDの商品を返す。存在しない場合はPRODUCT_NOT_FOUNDを返す。
func (s *Service) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("商品の取得に失敗しました: %w", err)
	}
	if p == nil {
		return nil, model.NewProductNotFoundError(strconv.FormatInt(id, 10))
	}
	return p, nil
}

// ListByCategory はカテゴリに部分一致する商品を返す。
func (s *Service) ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	products, err := s.productRepo.ListByCategory(ctx, category, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("カテゴリ別商品一覧の取得に失敗しました: %w", err)
	}
	return products, nil
}

// Search は指定条件をすべて満たす商品を返す。
// 価格範囲は両端を含み、min > max の場合は該当なしとなる。
func (s *Service) Search(ctx context.Context, params model.ProductSearchParams) ([]model.Product, error) {
	params.Limit = normalizeLimit(params.Limit)

	products, err := s.productRepo.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("商品検索に失敗しました: %w", err)
	}
	return products, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
