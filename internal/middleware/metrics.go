package middleware

import (
	"net/http"
	"time"

	"github.com/hitoshi/orderviewer/internal/metrics"
)

// NewMetricsMiddleware はルートパターン単位でリクエスト数と処理時間を記録するミドルウェアを返す。
func NewMetricsMiddleware(collector metrics.MetricsCollector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			collector.RecordHTTPRequest(r.Method, routePattern(r), rec.statusCode, time.Since(start))
		})
	}
}
