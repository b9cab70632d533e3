package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// トランザクション内で使う約束
type TxRepos interface {
	Products() Records[model.Product]
	ProductQueries() ProductRepository
	Details() Records[model.ProductDetail]
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
