package repository

import (
	"database/sql"
	"strings"
)

// likeEscaper はILIKEパターン中のメタ文字をエスケープする。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern は部分一致検索用のILIKEパターンを生成する。
// 入力中の % と _ はリテラルとして扱われる。
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// nullStringPtr はsql.NullStringを任意項目のポインタに変換する。
func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

// rowScanner は*sql.Rowと*sql.Rowsの共通インターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}
