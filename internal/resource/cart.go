package resource

import "storefront/internal/domain/model"

type Cart struct {
	ID          int64    `json:"id"`
	Quantity    int      `json:"quantity"`
	UserID      int64    `json:"user_id"`
	ProductID   int64    `json:"product_id"`
	ProductName string   `json:"product_name"`
	Description *string  `json:"description"`
	Brand       *string  `json:"brand"`
	Categories  string   `json:"categories"`
	DetailsID   int64    `json:"details_id"`
	Stock       int      `json:"stock"`
	Discount    *float64 `json:"discount"`
	Image       string   `json:"image"`
	Price       float64  `json:"price"` // 割引後
	Color       string   `json:"color"`
	Size        string   `json:"size"`
}

// 関連: User, Product.Categories, ProductDetail
func NewCart(c model.Cart) Cart {
	d := c.ProductDetail
	return Cart{
		ID:          c.ID,
		Quantity:    c.Quantity,
		UserID:      c.UserID,
		ProductID:   c.Product.ID,
		ProductName: c.Product.ProductName,
		Description: c.Product.Description,
		Brand:       c.Product.Brand,
		Categories:  categoryNames(c.Product.Categories),
		DetailsID:   d.ID,
		Stock:       d.Stock,
		Discount:    nullMoney(d.Discount),
		Image:       d.Image,
		Price:       money(d.FinalPrice()),
		Color:       d.Color,
		Size:        d.Size,
	}
}

func NewCarts(cs []model.Cart) []Cart {
	return Collection(cs, NewCart)
}
