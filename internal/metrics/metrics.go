// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアとハンドラー層から利用する。
type MetricsCollector interface {
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
	RecordLookupMiss(resource string)
	RecordRateLimited()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	lookupMisses *prometheus.CounterVec
	rateLimited  prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderviewer_http_requests_total",
			Help: "ルート・メソッド・ステータスコード別のリクエスト数",
		}, []string{"method", "route", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orderviewer_http_request_duration_seconds",
			Help:    "リクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		lookupMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderviewer_lookup_misses_total",
			Help: "リソース種別ごとの404応答数",
		}, []string{"resource"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderviewer_rate_limited_total",
			Help: "レート制限で拒否したリクエスト数",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.lookupMisses,
		c.rateLimited,
	)

	return c
}

// RecordHTTPRequest はリクエスト数と処理時間を記録する。
// routeにはchiのルートパターンを渡し、ラベルのカーディナリティを抑える。
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordLookupMiss は未検出応答を記録する。
func (c *Collector) RecordLookupMiss(resource string) {
	c.lookupMisses.WithLabelValues(resource).Inc()
}

// RecordRateLimited はレート制限による拒否を記録する。
func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop は何も記録しないMetricsCollector。メトリクス無効時に使う。
type Noop struct{}

func (Noop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Noop) RecordLookupMiss(string)                            {}
func (Noop) RecordRateLimited()                                 {}
