package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/orderviewer/internal/metrics"
	"github.com/hitoshi/orderviewer/internal/model"
)

// healthPingTimeout はヘルスチェック時のDB疎通確認のタイムアウト。
const healthPingTimeout = 2 * time.Second

// DBPinger はデータベースの疎通確認インターフェース。*sql.DBが満たす。
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// StatsServiceInterface は統計ハンドラーが必要とするサービスインターフェース。
type StatsServiceInterface interface {
	Get(ctx context.Context) (*model.DatabaseStats, error)
}

// HealthHandler は死活監視と統計のHTTPハンドラー。
type HealthHandler struct {
	errorResponder
	db           DBPinger
	stats        StatsServiceInterface
	includeStats bool
}

// NewHealthHandler はHealthHandlerを生成する。
// includeStatsがtrueの場合、/api/healthにデータベース統計を含める。
func NewHealthHandler(db DBPinger, stats StatsServiceInterface, includeStats bool, collector metrics.MetricsCollector) *HealthHandler {
	return &HealthHandler{
		errorResponder: newErrorResponder(collector),
		db:             db,
		stats:          stats,
		includeStats:   includeStats,
	}
}

type rootResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status   string                 `json:"status"`
	Message  string                 `json:"message"`
	Database string                 `json:"database"`
	Stats    *databaseStatsResponse `json:"stats,omitempty"`
}

// Root は稼働メッセージを返す。常に200。
// GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, rootResponse{Message: "Order Viewer API is running"})
}

// Health はヘルスステータスを返す。DBに到達できない場合もステータスは200で、
// databaseフィールドにunavailableを設定する。
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "healthy",
		Message:  "API is working properly",
		Database: "ok",
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		slog.Warn("health check: database unreachable", slog.String("error", err.Error()))
		resp.Database = "unavailable"
	} else if h.includeStats {
		st, err := h.stats.Get(ctx)
		if err != nil {
			slog.Warn("health check: stats unavailable", slog.String("error", err.Error()))
		} else {
			resp.Stats = toDatabaseStatsResponse(st)
		}
	}

	writeJSON(w, resp)
}

// Stats は各テーブルの件数を返す。
// GET /api/stats
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Get(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, toDatabaseStatsResponse(st))
}
