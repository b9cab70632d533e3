package model

import "time"

// お気に入り（数量なし）
type Favorite struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64         `gorm:"not null;index" json:"user_id"`
	User            User          `json:"user"`
	ProductID       int64         `gorm:"not null;index" json:"product_id"`
	Product         Product       `json:"product"`
	ProductDetailID int64         `gorm:"not null;index" json:"product_detail_id"`
	ProductDetail   ProductDetail `gorm:"constraint:OnDelete:CASCADE" json:"product_detail"`
	CreatedAt       time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
