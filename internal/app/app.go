// Package app はサブコマンドの解析と依存関係のワイヤリングを行う。
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/orderviewer/internal/center"
	"github.com/hitoshi/orderviewer/internal/config"
	"github.com/hitoshi/orderviewer/internal/database"
	"github.com/hitoshi/orderviewer/internal/handler"
	"github.com/hitoshi/orderviewer/internal/logger"
	"github.com/hitoshi/orderviewer/internal/metrics"
	"github.com/hitoshi/orderviewer/internal/middleware"
	"github.com/hitoshi/orderviewer/internal/order"
	"github.com/hitoshi/orderviewer/internal/product"
	"github.com/hitoshi/orderviewer/internal/repository"
	"github.com/hitoshi/orderviewer/internal/stats"
	"github.com/hitoshi/orderviewer/internal/user"
)

const (
	shutdownTimeout    = 30 * time.Second
	healthcheckTimeout = 5 * time.Second
)

// Init はアプリケーションの初期化を行う。
// Infoレベルでログを初期化してから環境変数を読み込み、設定されたログレベルに切り替える。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	logger.SetupDefault(w, slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.SetLevel(w, cfg.LogLevel)
	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// argsにはos.Args[1:]を渡す。statsの表はstdoutに書き出す。
func Run(w io.Writer, stdout io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(fmt.Sprintf("http://localhost:%s/api/health", port))
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandStats:
		return runStats(cfg, stdout)
	default:
		return runServe(cfg)
	}
}

// openDatabase はプール設定付きでDB接続を開き、疎通を確認する。
// 疎通できない場合はDB_CONNECT_ATTEMPTS回まで指数バックオフで再試行する。
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := database.Open(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.WaitForConnection(ctx, db, cfg.DBConnectAttempts); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
		slog.Int("max_open_conns", cfg.DBMaxOpenConns),
	)
	return db, nil
}

// newMetrics はプライベートレジストリにアプリケーションとランタイムのコレクタを登録する。
// メトリクスが無効な場合はNoopと nil ハンドラーを返す。
func newMetrics(enabled bool) (metrics.MetricsCollector, http.Handler) {
	if !enabled {
		return metrics.Noop{}, nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.NewCollector(reg), metrics.Handler(reg)
}

// newRouterDeps はDB接続からリポジトリ・サービスを組み立てる。
func newRouterDeps(cfg *config.Config, db *sql.DB, collector metrics.MetricsCollector, metricsHandler http.Handler, rl *middleware.RateLimiter) *handler.RouterDeps {
	userRepo := repository.NewPostgresUserRepo(db)
	orderRepo := repository.NewPostgresOrderRepo(db)
	itemRepo := repository.NewPostgresOrderItemRepo(db)
	productRepo := repository.NewPostgresProductRepo(db)
	centerRepo := repository.NewPostgresDistributionCenterRepo(db)
	statsRepo := repository.NewPostgresStatsRepo(db)

	return &handler.RouterDeps{
		Logger:             slog.Default(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        rl,
		Metrics:            collector,
		MetricsHandler:     metricsHandler,

		DB:                 db,
		HealthIncludeStats: cfg.HealthIncludeStats,

		UserService:    user.NewService(userRepo),
		OrderService:   order.NewService(orderRepo, itemRepo, userRepo),
		ProductService: product.NewService(productRepo),
		CenterService:  center.NewService(centerRepo),
		StatsService:   stats.NewService(statsRepo),
	}
}

// runServe はAPIサーバーモードで起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	collector, metricsHandler := newMetrics(cfg.MetricsEnabled)

	rl := middleware.NewRateLimiter(middleware.NewRateLimiterConfig(cfg.RateLimitGeneral), collector)
	defer rl.Stop()

	router := handler.NewRouter(newRouterDeps(cfg, db, collector, metricsHandler, rl))

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
			slog.Bool("metrics_enabled", cfg.MetricsEnabled),
			slog.Int("rate_limit_per_minute", cfg.RateLimitGeneral),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server listen failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	version, err := database.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully", slog.Uint64("version", uint64(version)))
	return nil
}

// runStats は各テーブルの件数を表形式でoutに出力する。
func runStats(cfg *config.Config, out io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := stats.NewService(repository.NewPostgresStatsRepo(db)).Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get database stats: %w", err)
	}

	return stats.RenderTable(out, st)
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
func runHealthcheck(target string) error {
	client := &http.Client{Timeout: healthcheckTimeout}

	resp, err := client.Get(target)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLのパスワードをマスクする。
// パースできない場合は全体を伏せる。
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	return u.Redacted()
}
