package model

import "time"

type Category struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryName string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"category_name"`
	Products     []Product `gorm:"many2many:product_categories;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
