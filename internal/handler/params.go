package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/orderviewer/internal/model"
)

// pathID はURLパラメータのIDを正の整数として解釈する。
func pathID(r *http.Request, key string) (int64, *model.APIError) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewInvalidIDError(raw)
	}
	return id, nil
}

// queryString はクエリパラメータを前後の空白を除いて返す。
func queryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// queryInt は整数のクエリパラメータを返す。未指定の場合は0。
func queryInt(r *http.Request, name string) (int, *model.APIError) {
	raw := queryString(r, name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewInvalidParameterError(name, "must be an integer")
	}
	return v, nil
}

// queryFloat は数値のクエリパラメータを返す。未指定の場合はnil。
func queryFloat(r *http.Request, name string) (*float64, *model.APIError) {
	raw := queryString(r, name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, model.NewInvalidParameterError(name, "must be a number")
	}
	return &v, nil
}
