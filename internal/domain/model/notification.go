package model

import "time"

type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"`
	IsGlobal  bool      `gorm:"not null;default:false;index" json:"is_global"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// ユーザーごとの配信行（既読フラグ付き）
type NotificationUser struct {
	UserID         int64     `gorm:"primaryKey" json:"user_id"`
	NotificationID int64     `gorm:"primaryKey;index" json:"notification_id"`
	ReadAt         bool      `gorm:"not null;default:false" json:"read_at"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (NotificationUser) TableName() string {
	return "notification_user"
}
