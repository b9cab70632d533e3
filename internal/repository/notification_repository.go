package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type NotificationRepository interface {
	// グローバル通知 ∪ userに配信された通知
	ListVisible(ctx context.Context, userID int64) ([]model.Notification, error)
	// 通知を作成して配信する。グローバルなら作成時点の全ユーザーへ、そうでなければactorだけ。
	CreateAndDistribute(ctx context.Context, n *model.Notification, actorUserID int64) error
	IsAttached(ctx context.Context, userID int64, notificationID int64) (bool, error)
	Detach(ctx context.Context, userID int64, notificationID int64) error
	DetachAll(ctx context.Context, userID int64) error
}
