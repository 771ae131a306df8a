package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// initialPingBackoff は疎通確認リトライの初回待機時間。
	initialPingBackoff = 500 * time.Millisecond
	// maxPingBackoff は疎通確認リトライの最大待機時間。
	maxPingBackoff = 8 * time.Second
)

// Pinger は疎通確認インターフェース。*sql.DBが満たす。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingBackoff は失敗回数に基づく指数バックオフの待機時間を返す。
// 初回500ms、2倍ずつ増加、最大8秒。
func PingBackoff(failures int) time.Duration {
	delay := initialPingBackoff
	for i := 0; i < failures; i++ {
		delay *= 2
		if delay > maxPingBackoff {
			return maxPingBackoff
		}
	}
	return delay
}

// WaitForConnection はデータベースに到達できるまで最大attempts回PingContextを試行する。
// コンテナ起動直後などDBの準備が整っていない場合に使う。
// ctxがキャンセルされた場合は待機を打ち切る。
func WaitForConnection(ctx context.Context, db Pinger, attempts int) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		delay := PingBackoff(i)
		slog.Warn("database not reachable, retrying",
			slog.Int("attempt", i+1),
			slog.Int("max_attempts", attempts),
			slog.Duration("retry_in", delay),
			slog.String("error", err.Error()),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("waiting for database cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("database unreachable after %d attempts: %w", attempts, err)
}
