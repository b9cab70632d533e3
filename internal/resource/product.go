package resource

import "storefront/internal/domain/model"

type Product struct {
	ID            int64    `json:"id"`
	ProductName   string   `json:"product_name"`
	Description   *string  `json:"description"`
	Brand         *string  `json:"brand"`
	VendorID      int64    `json:"vendor_id"`
	VendorName    string   `json:"vendor_name"`
	VendorImage   *string  `json:"vendor_image"`
	Categories    string   `json:"categories"`
	Size          *string  `json:"size"`
	Color         *string  `json:"color"`
	Image         *string  `json:"image"`
	OriginalPrice *float64 `json:"original_price"`
	FinalPrice    *float64 `json:"final_price"`
	Discount      *float64 `json:"discount"`
	Stock         *int     `json:"stock"`
	IsFavorite    bool     `json:"is_favorite"`
	FavoriteID    *int64   `json:"favorite_id"`
}

// favoritesは呼び出し側でまとめて引いた product_id -> favorite_id（nil可）
func NewProduct(p model.Product, favorites map[int64]int64) Product {
	out := Product{
		ID:          p.ID,
		ProductName: p.ProductName,
		Description: p.Description,
		Brand:       p.Brand,
		VendorID:    p.VendorID,
		VendorName:  p.Vendor.Name,
		VendorImage: p.Vendor.Image,
		Categories:  categoryNames(p.Categories),
	}

	// 価格などは先頭のバリエーションから
	if d, ok := p.FirstDetail(); ok {
		size, color, image, stock := d.Size, d.Color, d.Image, d.Stock
		original := money(d.Price)
		final := money(d.FinalPrice())

		out.Size = &size
		out.Color = &color
		out.Image = &image
		out.OriginalPrice = &original
		out.FinalPrice = &final
		out.Discount = nullMoney(d.Discount)
		out.Stock = &stock
	}

	if favID, ok := favorites[p.ID]; ok {
		id := favID
		out.IsFavorite = true
		out.FavoriteID = &id
	}
	return out
}

func NewProducts(ps []model.Product, favorites map[int64]int64) []Product {
	return Collection(ps, func(p model.Product) Product {
		return NewProduct(p, favorites)
	})
}

// 商品IDの一覧（お気に入りの一括取得用）
func ProductIDs(ps []model.Product) []int64 {
	ids := make([]int64, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}
