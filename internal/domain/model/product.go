package model

import "time"

type Product struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName string           `gorm:"type:varchar(255);not null;index" json:"product_name"`
	Description *string          `gorm:"type:text" json:"description"`
	Brand       *string          `gorm:"type:varchar(255);index" json:"brand"`
	VendorID    int64            `gorm:"not null;index" json:"vendor_id"`
	Vendor      Vendor           `gorm:"constraint:OnDelete:CASCADE" json:"vendor"`
	Categories  []Category       `gorm:"many2many:product_categories;constraint:OnDelete:CASCADE" json:"categories"`
	Details     []ProductDetail  `gorm:"constraint:OnDelete:CASCADE" json:"details"`
	Comments    []ProductComment `gorm:"constraint:OnDelete:CASCADE" json:"comments"`
	Favorites   []Favorite       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 先頭のバリエーション（一覧の価格表示に使う）
func (p Product) FirstDetail() (ProductDetail, bool) {
	if len(p.Details) == 0 {
		return ProductDetail{}, false
	}
	return p.Details[0], true
}

// カテゴリIDの一覧
func (p Product) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
