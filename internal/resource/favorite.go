package resource

import "storefront/internal/domain/model"

type Favorite struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"user_id"`
	UserName    string   `json:"user_name"`
	ProductID   int64    `json:"product_id"`
	ProductName string   `json:"product_name"`
	Description *string  `json:"description"`
	Brand       *string  `json:"brand"`
	Categories  string   `json:"categories"`
	DetailsID   int64    `json:"details_id"`
	Stock       int      `json:"stock"`
	Discount    *float64 `json:"discount"`
	Image       string   `json:"image"`
	Price       float64  `json:"price"` // 定価（割引前）
	Color       string   `json:"color"`
	Size        string   `json:"size"`
}

func NewFavorite(f model.Favorite) Favorite {
	d := f.ProductDetail
	return Favorite{
		ID:          f.ID,
		UserID:      f.UserID,
		UserName:    f.User.Name,
		ProductID:   f.Product.ID,
		ProductName: f.Product.ProductName,
		Description: f.Product.Description,
		Brand:       f.Product.Brand,
		Categories:  categoryNames(f.Product.Categories),
		DetailsID:   d.ID,
		Stock:       d.Stock,
		Discount:    nullMoney(d.Discount),
		Image:       d.Image,
		Price:       money(d.Price),
		Color:       d.Color,
		Size:        d.Size,
	}
}

func NewFavorites(fs []model.Favorite) []Favorite {
	return Collection(fs, NewFavorite)
}
