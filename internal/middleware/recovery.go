package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// NewRecoveryMiddleware はハンドラー内のpanicを捕捉し、INTERNAL_ERRORの500応答に置き換える。
// http.ErrAbortHandlerはnet/httpに応答中断を伝えるためそのまま再送出する。
func NewRecoveryMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logPanic(r, rec)
				WriteInternalServerError(w)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// logPanic はリクエストIDとスタックトレース付きでpanicを記録する。
func logPanic(r *http.Request, rec any) {
	slog.Error("panic recovered",
		slog.Any("panic", rec),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("route", routePattern(r)),
		slog.String("request_id", RequestIDFromContext(r.Context())),
		slog.String("stack", string(debug.Stack())),
	)
}
