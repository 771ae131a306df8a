// Package model はドメインモデルを定義する。
package model

import "time"

// User は注文を行う顧客を表す。
// Phone、Address、City、Countryは任意項目で、未設定の場合はnil。
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Phone     *string
	Address   *string
	City      *string
	Country   *string
	CreatedAt time.Time
}

// UserSearchParams はユーザー検索の条件を表す。
// 空文字のフィールドは条件に含めない。指定されたフィールドはOR条件で結合される。
type UserSearchParams struct {
	Email     string
	FirstName string
	LastName  string
	City      string
	Phone     string
	Skip      int
	Limit     int
}

// HasFilters は1つ以上の検索条件が指定されているかを返す。
func (p UserSearchParams) HasFilters() bool {
	return p.Email != "" || p.FirstName != "" || p.LastName != "" || p.City != "" || p.Phone != ""
}
