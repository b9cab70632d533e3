package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// キャッシュから読んだページ。Versionはミスでも読んだ時点の世代が入る。
type CachedPage struct {
	Products []model.Product
	Total    int64
	Version  int64
}

// 世代が読めなかったとき（Setは何もしない）
const UnknownVersion int64 = -1

// /products/limited のページキャッシュ
type ProductPageCache interface {
	Get(ctx context.Context, page int) (CachedPage, bool)
	// Getで受け取った世代に書く。その後に無効化されていれば誰にも読まれない。
	Set(ctx context.Context, page int, version int64, products []model.Product, total int64)
	// カタログが変わったら全ページを無効化
	Invalidate(ctx context.Context)
}
