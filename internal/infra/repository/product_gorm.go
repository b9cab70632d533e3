package repository

import (
	"context"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

// 商品とカテゴリの中間テーブル
type productCategory struct {
	ProductID  int64 `gorm:"primaryKey"`
	CategoryID int64 `gorm:"primaryKey"`
}

func (productCategory) TableName() string {
	return "product_categories"
}

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索/カテゴリ/ブランドで絞り込んだ一覧
func (r *ProductGormRepository) List(ctx context.Context, f repo.ProductFilter) ([]model.Product, error) {
	var products []model.Product

	tx := withRelations(r.db.WithContext(ctx).Model(&model.Product{}), repo.ProductRelations)

	// 商品名 or 説明
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("products.product_name ILIKE ? OR products.description ILIKE ?", like, like)
	}

	if f.CategoryID > 0 {
		sub := r.db.Model(&productCategory{}).Select("product_id").Where("category_id = ?", f.CategoryID)
		tx = tx.Where("products.id IN (?)", sub)
	}

	if b := strings.TrimSpace(f.Brand); b != "" {
		tx = tx.Where("products.brand = ?", b)
	}

	if err := tx.Order("products.id asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// ページング付き一覧
func (r *ProductGormRepository) Paginate(ctx context.Context, page int, perPage int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	if page < 1 {
		page = 1
	}
	// 最終ページより先はオフセットを計算せず空で返す
	if int64(page-1) >= (total+int64(perPage)-1)/int64(perPage) {
		return []model.Product{}, total, nil
	}

	offset := (page - 1) * perPage
	err := withRelations(r.db.WithContext(ctx), repo.ProductRelations).
		Order("id asc").
		Offset(offset).
		Limit(perPage).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}
	return products, total, nil
}

// 関連商品（ブランド一致 or カテゴリ共有、自分は除外）
func (r *ProductGormRepository) Related(ctx context.Context, p model.Product, limit int) ([]model.Product, error) {
	categoryIDs := p.CategoryIDs()
	hasBrand := p.Brand != nil && *p.Brand != ""

	if !hasBrand && len(categoryIDs) == 0 {
		return []model.Product{}, nil
	}

	tx := withRelations(r.db.WithContext(ctx).Model(&model.Product{}), repo.ProductRelations).
		Where("products.id <> ?", p.ID)

	sub := r.db.Model(&productCategory{}).Select("product_id").Where("category_id IN ?", categoryIDs)
	switch {
	case hasBrand && len(categoryIDs) > 0:
		tx = tx.Where("products.brand = ? OR products.id IN (?)", *p.Brand, sub)
	case hasBrand:
		tx = tx.Where("products.brand = ?", *p.Brand)
	default:
		tx = tx.Where("products.id IN (?)", sub)
	}

	var products []model.Product
	if err := tx.Order("products.id asc").Limit(limit).Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// カテゴリの紐付けを入れ替える
func (r *ProductGormRepository) ReplaceCategories(ctx context.Context, productID int64, categoryIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&productCategory{}).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}

		rows := make([]productCategory, 0, len(categoryIDs))
		seen := make(map[int64]struct{}, len(categoryIDs))
		for _, id := range categoryIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			rows = append(rows, productCategory{ProductID: productID, CategoryID: id})
		}
		return translate(tx.Create(&rows).Error)
	})
}

// バリエーション → カテゴリ紐付け → 商品の順に削除
func (r *ProductGormRepository) DeleteCascade(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.ProductDetail{}).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("product_id = ?", productID).Delete(&productCategory{}).Error; err != nil {
			return translate(err)
		}

		res := tx.Delete(&model.Product{}, productID)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
