package repository

import (
	"context"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

// DI
func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

// 商品ごとの最初のお気に入りIDをまとめて引く
func (r *FavoriteGormRepository) FavoriteIDsFor(ctx context.Context, userID int64, productIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(productIDs))
	if userID <= 0 || len(productIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ProductID  int64
		FavoriteID int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Select("product_id, MIN(id) AS favorite_id").
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.ProductID] = row.FavoriteID
	}
	return out, nil
}
