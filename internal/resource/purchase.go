package resource

import (
	"time"

	"storefront/internal/domain/model"
)

type Purchase struct {
	ID              int64      `json:"id"`
	Quantity        int        `json:"quantity"`
	TotalPrice      float64    `json:"total_price"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	UserID          int64      `json:"user_id"`
	UserName        string     `json:"user_name"`
	Address         string     `json:"address"`
	ProductDetailID int64      `json:"product_detail_id"`
}

func NewPurchase(p model.Purchase) Purchase {
	return Purchase{
		ID:              p.ID,
		Quantity:        p.Quantity,
		TotalPrice:      money(p.TotalPrice),
		PurchaseDate:    p.PurchaseDate,
		UserID:          p.UserID,
		UserName:        p.User.Name,
		Address:         p.User.Address,
		ProductDetailID: p.ProductDetailID,
	}
}

func NewPurchases(ps []model.Purchase) []Purchase {
	return Collection(ps, NewPurchase)
}
