// Package center は物流拠点参照のドメインロジックを提供する。
package center

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hitoshi/orderviewer/internal/model"
	"github.com/hitoshi/orderviewer/internal/repository"
)

// Service は物流拠点参照のサービス層。
type Service struct {
	centerRepo repository.DistributionCenterRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(centerRepo repository.DistributionCenterRepository) *Service {
	return &Service{centerRepo: centerRepo}
}

// List は全物流拠点を返す。
func (s *Service) List(ctx context.Context) ([]model.DistributionCenter, error) {
	centers, err := s.centerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("物流拠点一覧の取得に失敗しました: %w", err)
	}
	return centers, nil
}

// GetByID は指定IDの物流拠点を返す。存在しない場合はDISTRIBUTION_CENTER_NOT_FOUNDを返す。
func (s *Service) GetByID(ctx context.Context, id int64) (*model.DistributionCenter, error) {
	c, err := s.centerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("物流拠点の取得に失敗しました: %w", err)
	}
	if c == nil {
		return nil, model.NewDistributionCenterNotFoundError(strconv.FormatInt(id, 10))
	}
	return c, nil
}
