// Package resource はモデル（関連ロード済み）をAPIの出力形に変換する。
// ここではクエリを発行しない。
package resource

import (
	"strings"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 一覧をまとめて変換
func Collection[E any, R any](items []E, fn func(E) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

// 金額は小数第2位に丸めてfloatで返す
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func nullMoney(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	v := d.Decimal.InexactFloat64()
	return &v
}

// "Shirts, Summer"
func categoryNames(cs []model.Category) string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.CategoryName)
	}
	return strings.Join(names, ", ")
}
