// Package stats はデータベース統計の取得と表形式出力を提供する。
package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/hitoshi/orderviewer/internal/model"
	"github.com/hitoshi/orderviewer/internal/repository"
)

// Service はデータベース統計のサービス層。
type Service struct {
	statsRepo repository.StatsRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(statsRepo repository.StatsRepository) *Service {
	return &Service{statsRepo: statsRepo}
}

// Get は各テーブルの件数を返す。
func (s *Service) Get(ctx context.Context) (*model.DatabaseStats, error) {
	st, err := s.statsRepo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("データベース統計の取得に失敗しました: %w", err)
	}
	return st, nil
}

// RenderTable は統計をテーブル名・件数の表としてwに書き出す。
func RenderTable(w io.Writer, st *model.DatabaseStats) error {
	table := tablewriter.NewWriter(w)
	table.Header("Table", "Rows")

	rows := []struct {
		name  string
		count int64
	}{
		{"users", st.UsersCount},
		{"orders", st.OrdersCount},
		{"products", st.ProductsCount},
		{"order_items", st.OrderItemsCount},
		{"distribution_centers", st.DistributionCentersCount},
	}
	for _, r := range rows {
		if err := table.Append(r.name, strconv.FormatInt(r.count, 10)); err != nil {
			return fmt.Errorf("統計行の追加に失敗しました: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("統計テーブルの出力に失敗しました: %w", err)
	}
	return nil
}
