package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// 原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: not_found, validation, system
	Action   string // 呼び出し側向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUserNotFound               = "USER_NOT_FOUND"
	ErrCodeOrderNotFound              = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound            = "PRODUCT_NOT_FOUND"
	ErrCodeDistributionCenterNotFound = "DISTRIBUTION_CENTER_NOT_FOUND"
	ErrCodeOrdersNotFound             = "ORDERS_NOT_FOUND"
	ErrCodeOrderItemsNotFound         = "ORDER_ITEMS_NOT_FOUND"
	ErrCodeInvalidID                  = "INVALID_ID"
	ErrCodeInvalidParameter           = "INVALID_PARAMETER"
	ErrCodeRateLimitExceeded          = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal                   = "INTERNAL_ERROR"
)

// IsNotFound はエラーコードが未検出系かどうかを返す。
func (e *APIError) IsNotFound() bool {
	switch e.Code {
	case ErrCodeUserNotFound, ErrCodeOrderNotFound, ErrCodeProductNotFound,
		ErrCodeDistributionCenterNotFound, ErrCodeOrdersNotFound, ErrCodeOrderItemsNotFound:
		return true
	default:
		return false
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError(userID string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("User not found: %s", userID),
		Category: "not_found",
		Action:   "Check the user ID or email.",
	}
}

// NewOrderNotFoundError は注文が見つからない場合のエラーを生成する。
func NewOrderNotFoundError(orderID string) *APIError {
	return &APIError{
		Code:     ErrCodeOrderNotFound,
		Message:  fmt.Sprintf("Order not found: %s", orderID),
		Category: "not_found",
		Action:   "Check the order ID.",
	}
}

// NewProductNotFoundError は商品が見つからない場合のエラーを生成する。
func NewProductNotFoundError(productID string) *APIError {
	return &APIError{
		Code:     ErrCodeProductNotFound,
		Message:  fmt.Sprintf("Product not found: %s", productID),
		Category: "not_found",
		Action:   "Check the product ID.",
	}
}

// NewDistributionCenterNotFoundError は物流拠点が見つからない場合のエラーを生成する。
func NewDistributionCenterNotFoundError(centerID string) *APIError {
	return &APIError{
		Code:     ErrCodeDistributionCenterNotFound,
		Message:  fmt.Sprintf("Distribution center not found: %s", centerID),
		Category: "not_found",
		Action:   "Check the distribution center ID.",
	}
}

// NewOrdersNotFoundError は存在するユーザーに注文が1件もない場合のエラーを生成する。
func NewOrdersNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeOrdersNotFound,
		Message:  "No orders found for this user",
		Category: "not_found",
		Action:   "The user has not placed any orders in the requested range.",
	}
}

// NewOrderItemsNotFoundError は存在する注文に明細が1件もない場合のエラーを生成する。
func NewOrderItemsNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeOrderItemsNotFound,
		Message:  "No items found for this order",
		Category: "not_found",
		Action:   "The order exists but has no items.",
	}
}

// NewInvalidIDError はパスパラメータのIDが整数として解釈できない場合のエラーを生成する。
func NewInvalidIDError(raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("Invalid ID: %q", raw),
		Category: "validation",
		Action:   "Specify a positive integer ID.",
	}
}

// NewInvalidParameterError はクエリパラメータが不正な場合のエラーを生成する。
func NewInvalidParameterError(name, reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidParameter,
		Message:  fmt.Sprintf("Invalid parameter %s: %s", name, reason),
		Category: "validation",
		Action:   "Fix the query parameter and retry.",
	}
}

// NewRateLimitExceededError はレート制限超過時のエラーを生成する。
func NewRateLimitExceededError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimitExceeded,
		Message:  "Too many requests",
		Category: "system",
		Action:   "Wait and retry after the time given in Retry-After.",
	}
}

// NewInternalError は内部エラーの汎用レスポンス用エラーを生成する。
// 詳細はログにのみ記録し、呼び出し側には返さない。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "Internal server error",
		Category: "system",
		Action:   "Retry later. If the problem persists, contact the operator.",
	}
}
