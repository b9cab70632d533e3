package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderDetail struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	User            User            `json:"user"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	OrderStatus     uint8           `gorm:"not null;default:0" json:"order_status"` // 0〜255
	ShippingAddress string          `gorm:"type:varchar(255);not null" json:"shipping_address"`
	ShippingCost    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shipping_cost"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
