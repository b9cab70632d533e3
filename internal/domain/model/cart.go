package model

import "time"

// カート明細。(user, product, variant) の重複はそのまま許可する。
type Cart struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64         `gorm:"not null;index" json:"user_id"`
	User            User          `json:"user"`
	ProductID       int64         `gorm:"not null;index" json:"product_id"`
	Product         Product       `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	ProductDetailID int64         `gorm:"not null;index" json:"product_detail_id"`
	ProductDetail   ProductDetail `gorm:"constraint:OnDelete:CASCADE" json:"product_detail"`
	Quantity        int           `gorm:"not null;default:1" json:"quantity"`
	CreatedAt       time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
