package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/orderviewer/internal/metrics"
	"github.com/hitoshi/orderviewer/internal/middleware"
	"github.com/hitoshi/orderviewer/internal/model"
)

// apiErrorResponse はAPIエラーレスポンスのJSON構造。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// errorResponder はサービス層のエラーをHTTPレスポンスに変換する。
// 未検出応答はリソース種別ごとにメトリクスへ記録する。
type errorResponder struct {
	metrics metrics.MetricsCollector
}

func newErrorResponder(collector metrics.MetricsCollector) errorResponder {
	if collector == nil {
		collector = metrics.Noop{}
	}
	return errorResponder{metrics: collector}
}

// writeAPIErrorResponse はAPIErrorを統一フォーマットで書き込む。
func (e errorResponder) writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	if statusCode == http.StatusNotFound {
		e.metrics.RecordLookupMiss(missResource(apiErr.Code))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func (e errorResponder) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		e.writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外は内部エラー。詳細はログのみに残す
	slog.Error("internal server error",
		slog.String("error", err.Error()),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
	)
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidID, model.ErrCodeInvalidParameter:
		return http.StatusBadRequest
	case model.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	}
	if apiErr.IsNotFound() {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// missResource はエラーコードからメトリクス用のリソース名を返す。
func missResource(code string) string {
	switch code {
	case model.ErrCodeUserNotFound:
		return "user"
	case model.ErrCodeOrderNotFound:
		return "order"
	case model.ErrCodeProductNotFound:
		return "product"
	case model.ErrCodeDistributionCenterNotFound:
		return "distribution_center"
	case model.ErrCodeOrdersNotFound:
		return "user_orders"
	case model.ErrCodeOrderItemsNotFound:
		return "order_items"
	default:
		return "other"
	}
}

// writeJSON は200でJSONを書き込む。
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func routeNotFoundError() *model.APIError {
	return &model.APIError{
		Code:     "ROUTE_NOT_FOUND",
		Message:  "No such endpoint",
		Category: "not_found",
		Action:   "Check the request path.",
	}
}

func methodNotAllowedError() *model.APIError {
	return &model.APIError{
		Code:     "METHOD_NOT_ALLOWED",
		Message:  "Only GET is supported",
		Category: "validation",
		Action:   "Use GET for all endpoints.",
	}
}
