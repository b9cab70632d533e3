package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 一覧の絞り込み
type ProductFilter struct {
	Search     string
	CategoryID int64
	Brand      string
}

// 商品一覧で常に読み込む関連
var ProductRelations = []string{"Vendor", "Categories", "Details", "Comments"}

// 商品固有のクエリ（検索・ページング・関連商品）
type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]model.Product, error)
	Paginate(ctx context.Context, page int, perPage int) ([]model.Product, int64, error)
	// ブランド一致 or カテゴリ共有。自分自身は除く。
	Related(ctx context.Context, p model.Product, limit int) ([]model.Product, error)

	ReplaceCategories(ctx context.Context, productID int64, categoryIDs []int64) error
	// バリエーション・カテゴリ紐付け・商品本体を削除
	DeleteCascade(ctx context.Context, productID int64) error
}
