package resource

import "storefront/internal/domain/model"

type ProductDetail struct {
	ID            int64   `json:"id"`
	ProductID     int64   `json:"product_id"`
	Size          string  `json:"size"`
	Color         string  `json:"color"`
	Image         string  `json:"image"`
	OriginalPrice float64 `json:"original_price"`
	FinalPrice    float64 `json:"final_price"`
	Discount      *string `json:"discount"` // "25%"
	Stock         int     `json:"stock"`
}

func NewProductDetail(d model.ProductDetail) ProductDetail {
	out := ProductDetail{
		ID:            d.ID,
		ProductID:     d.ProductID,
		Size:          d.Size,
		Color:         d.Color,
		Image:         d.Image,
		OriginalPrice: money(d.Price),
		FinalPrice:    money(d.FinalPrice()),
		Stock:         d.Stock,
	}
	if d.HasDiscount() {
		s := d.Discount.Decimal.String() + "%"
		out.Discount = &s
	}
	return out
}

func NewProductDetails(ds []model.ProductDetail) []ProductDetail {
	return Collection(ds, NewProductDetail)
}
