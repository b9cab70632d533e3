package repository

import (
	"context"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Records[E]のgorm実装。エンティティごとにインスタンス化して使う。
type RecordsGorm[E any] struct {
	db *gorm.DB
}

// DI
func NewRecordsGorm[E any](db *gorm.DB) *RecordsGorm[E] {
	return &RecordsGorm[E]{db: db}
}

var _ repo.Records[struct{}] = (*RecordsGorm[struct{}])(nil)

// 並びを固定して読む関連（先頭バリエーションを一覧の代表にするため）
var orderedRelations = map[string]string{
	"Details": "id asc",
}

func withRelations(tx *gorm.DB, relations []string) *gorm.DB {
	for _, rel := range relations {
		if order, ok := orderedRelations[rel]; ok {
			tx = tx.Preload(rel, func(db *gorm.DB) *gorm.DB {
				return db.Order(order)
			})
			continue
		}
		tx = tx.Preload(rel)
	}
	return tx
}

// 全件を関連付きで取得
func (r *RecordsGorm[E]) FetchAll(ctx context.Context, relations ...string) ([]E, error) {
	var out []E
	err := withRelations(r.db.WithContext(ctx), relations).
		Order("id asc").
		Find(&out).Error
	if err != nil {
		return []E{}, err
	}
	return out, nil
}

// column = value の行を関連付きで取得
func (r *RecordsGorm[E]) FetchAllBy(ctx context.Context, column string, value any, relations ...string) ([]E, error) {
	var out []E
	err := withRelations(r.db.WithContext(ctx), relations).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order("id asc").
		Find(&out).Error
	if err != nil {
		return []E{}, err
	}
	return out, nil
}

// IDで1件取得
func (r *RecordsGorm[E]) Find(ctx context.Context, id int64, relations ...string) (E, error) {
	var e E
	err := withRelations(r.db.WithContext(ctx), relations).First(&e, id).Error
	if err != nil {
		var zero E
		return zero, translate(err)
	}
	return e, nil
}

// 作成
func (r *RecordsGorm[E]) Create(ctx context.Context, e *E) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

// 指定列だけ更新
func (r *RecordsGorm[E]) Update(ctx context.Context, id int64, changes E, columns ...string) error {
	cols := make([]string, 0, len(columns)+1)
	cols = append(cols, columns...)
	cols = append(cols, "updated_at")

	res := r.db.WithContext(ctx).
		Model(new(E)).
		Where("id = ?", id).
		Select(cols).
		Updates(&changes)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 削除
func (r *RecordsGorm[E]) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(new(E), id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RecordsGorm[E]) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(new(E)).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RecordsGorm[E]) Taken(ctx context.Context, column string, value any, excludeID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(new(E)).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
