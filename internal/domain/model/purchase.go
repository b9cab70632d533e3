package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	User            User            `json:"user"`
	ProductDetailID int64           `gorm:"not null;index" json:"product_detail_id"`
	ProductDetail   ProductDetail   `gorm:"constraint:OnDelete:CASCADE" json:"product_detail"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	// 未指定ならDB側でCURRENT_TIMESTAMP
	PurchaseDate *time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"purchase_date"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
