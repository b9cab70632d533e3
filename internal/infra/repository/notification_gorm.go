package repository

import (
	"context"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
)

// 一括配信のバッチサイズ
const fanOutBatchSize = 500

type NotificationGormRepository struct {
	db *gorm.DB
}

// DI
func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

// グローバル通知 + 自分に配信された通知
func (r *NotificationGormRepository) ListVisible(ctx context.Context, userID int64) ([]model.Notification, error) {
	var out []model.Notification

	attached := r.db.Model(&model.NotificationUser{}).
		Select("notification_id").
		Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Where("is_global = ?", true).
		Or("id IN (?)", attached).
		Order("id desc").
		Find(&out).Error
	if err != nil {
		return []model.Notification{}, err
	}
	return out, nil
}

// 作成と配信を1トランザクションで行う。
// グローバルは作成時点のユーザー全員（後から登録したユーザーには配信しない）。
func (r *NotificationGormRepository) CreateAndDistribute(ctx context.Context, n *model.Notification, actorUserID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(n).Error; err != nil {
			return translate(err)
		}

		var userIDs []int64
		if n.IsGlobal {
			if err := tx.Model(&model.User{}).Order("id asc").Pluck("id", &userIDs).Error; err != nil {
				return err
			}
		} else {
			userIDs = []int64{actorUserID}
		}
		if len(userIDs) == 0 {
			return nil
		}

		rows := make([]model.NotificationUser, 0, len(userIDs))
		for _, uid := range userIDs {
			rows = append(rows, model.NotificationUser{
				UserID:         uid,
				NotificationID: n.ID,
				ReadAt:         false,
			})
		}
		return translate(tx.CreateInBatches(&rows, fanOutBatchSize).Error)
	})
}

func (r *NotificationGormRepository) IsAttached(ctx context.Context, userID int64, notificationID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NotificationUser{}).
		Where("user_id = ? AND notification_id = ?", userID, notificationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// 自分の配信行だけ外す（通知本体は残す）
func (r *NotificationGormRepository) Detach(ctx context.Context, userID int64, notificationID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND notification_id = ?", userID, notificationID).
		Delete(&model.NotificationUser{}).Error
}

func (r *NotificationGormRepository) DetachAll(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.NotificationUser{}).Error
}
