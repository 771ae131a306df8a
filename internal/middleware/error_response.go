package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/orderviewer/internal/model"
)

// ErrorResponseBody はミドルウェアが返すエラー本文。
// ハンドラー層のエラー応答と同じcode/message/category/actionの4項目を持つ。
type ErrorResponseBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

func newErrorResponseBody(apiErr *model.APIError) ErrorResponseBody {
	return ErrorResponseBody{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	}
}

// WriteErrorResponse はapiErrをstatusCodeのJSON応答として書き込む。
// レート制限・panic・未定義ルートなどハンドラーに届かない応答で使う。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(newErrorResponseBody(apiErr))
}

// WriteInternalServerError は500 INTERNAL_ERRORを書き込む。原因は本文に含めない。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}
