package model

import "time"

type ProductComment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	User      User      `json:"user"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Comment   string    `gorm:"type:varchar(500);not null" json:"comment"`
	Rating    int       `gorm:"not null" json:"rating"` // 1〜5
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
