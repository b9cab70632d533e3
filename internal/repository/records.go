package repository

import "context"

// エンティティ共通のCRUD。relationsはgormのPreloadパス（"Product.Categories" など）。
type Records[E any] interface {
	FetchAll(ctx context.Context, relations ...string) ([]E, error)
	// column = value で絞り込む（columnは呼び出し側の定数のみ）
	FetchAllBy(ctx context.Context, column string, value any, relations ...string) ([]E, error)
	Find(ctx context.Context, id int64, relations ...string) (E, error)

	Create(ctx context.Context, e *E) error
	// columnsに指定した列だけ上書きする
	Update(ctx context.Context, id int64, changes E, columns ...string) error
	Delete(ctx context.Context, id int64) error

	Exists(ctx context.Context, id int64) (bool, error)
	// 一意チェック（excludeIDの行は除外、0なら除外なし）
	Taken(ctx context.Context, column string, value any, excludeID int64) (bool, error)
}
