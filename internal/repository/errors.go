package repository

import "errors"

var (
	// 該当行なし
	ErrNotFound = errors.New("not found")
	// 一意制約違反
	ErrConflict = errors.New("conflict")
	// 外部キー違反（存在しない行を参照）
	ErrInvalidReference = errors.New("invalid reference")
)
