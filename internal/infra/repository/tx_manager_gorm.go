package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	products       repo.Records[model.Product]
	productQueries repo.ProductRepository
	details        repo.Records[model.ProductDetail]
}

func (r *txReposGorm) Products() repo.Records[model.Product]      { return r.products }
func (r *txReposGorm) ProductQueries() repo.ProductRepository     { return r.productQueries }
func (r *txReposGorm) Details() repo.Records[model.ProductDetail] { return r.details }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:       NewRecordsGorm[model.Product](tx),
			productQueries: NewProductGormRepository(tx),
			details:        NewRecordsGorm[model.ProductDetail](tx),
		}
		return fn(r)
	})
}
