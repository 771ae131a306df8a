package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/orderviewer/internal/metrics"
	"github.com/hitoshi/orderviewer/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger             *slog.Logger
	CORSAllowedOrigins []string
	RateLimiter        *middleware.RateLimiter
	Metrics            metrics.MetricsCollector
	// MetricsHandler が nil の場合 /metrics は公開しない
	MetricsHandler http.Handler

	// ヘルスチェック
	DB                 DBPinger
	HealthIncludeStats bool

	// サービス
	UserService    UserServiceInterface
	OrderService   OrderServiceInterface
	ProductService ProductServiceInterface
	CenterService  CenterServiceInterface
	StatsService   StatsServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Metrics → Recovery → SecurityHeaders → CORS → RateLimit
//
// CORSはプリフライトを処理するためルーティング前に適用する。
// /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collector := deps.Metrics
	if collector == nil {
		collector = metrics.Noop{}
	}

	r := chi.NewRouter()
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(collector))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigins))

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	healthHandler := NewHealthHandler(deps.DB, deps.StatsService, deps.HealthIncludeStats, collector)
	userHandler := NewUserHandler(deps.UserService, deps.OrderService, collector)
	orderHandler := NewOrderHandler(deps.OrderService, collector)
	productHandler := NewProductHandler(deps.ProductService, collector)
	centerHandler := NewCenterHandler(deps.CenterService, collector)

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Get("/", healthHandler.Root)
		r.Get("/api/health", healthHandler.Health)
		r.Get("/api/stats", healthHandler.Stats)

		mountUserRoutes(r, userHandler)
		mountOrderRoutes(r, orderHandler)
		mountProductRoutes(r, productHandler)
		mountCenterRoutes(r, centerHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteErrorResponse(w, http.StatusNotFound, routeNotFoundError())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteErrorResponse(w, http.StatusMethodNotAllowed, methodNotAllowedError())
	})

	return r
}
