package model

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// 購入単位のバリエーション（サイズ/色/価格/在庫）
type ProductDetail struct {
	ID        int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64               `gorm:"not null;index" json:"product_id"`
	Product   *Product            `json:"product,omitempty"`
	Size      string              `gorm:"type:varchar(50);not null" json:"size"`
	Color     string              `gorm:"type:varchar(50);not null" json:"color"`
	Image     string              `gorm:"type:varchar(255)" json:"image"`
	Price     decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	Discount  decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"discount"`
	Stock     int                 `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time           `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 割引が有効か（nullや0以下は割引なし）
func (d ProductDetail) HasDiscount() bool {
	return d.Discount.Valid && d.Discount.Decimal.IsPositive()
}

// 割引後の価格（小数第2位で丸める）
func (d ProductDetail) FinalPrice() decimal.Decimal {
	return FinalPrice(d.Price, d.Discount)
}

// price - price*discount/100
func FinalPrice(price decimal.Decimal, discount decimal.NullDecimal) decimal.Decimal {
	if !discount.Valid || !discount.Decimal.IsPositive() {
		return price.Round(2)
	}
	off := price.Mul(discount.Decimal).Div(hundred)
	return price.Sub(off).Round(2)
}
