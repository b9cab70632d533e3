package repository

import "context"

type FavoriteRepository interface {
	// product_id -> favorite_id（userのお気に入りのみ）。一覧1回につき1クエリ。
	FavoriteIDsFor(ctx context.Context, userID int64, productIDs []int64) (map[int64]int64, error)
}
