package resource

import (
	"time"

	"storefront/internal/domain/model"
)

type CategoryProduct struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"product_name"`
	Brand       *string `json:"brand"`
}

type Category struct {
	ID           int64             `json:"id"`
	CategoryName string            `json:"category_name"`
	Products     []CategoryProduct `json:"products"`
}

func NewCategory(c model.Category) Category {
	return Category{
		ID:           c.ID,
		CategoryName: c.CategoryName,
		Products: Collection(c.Products, func(p model.Product) CategoryProduct {
			return CategoryProduct{ID: p.ID, ProductName: p.ProductName, Brand: p.Brand}
		}),
	}
}

func NewCategories(cs []model.Category) []Category {
	return Collection(cs, NewCategory)
}

// パスワードは出さない
type Vendor struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image"`
}

func NewVendor(v model.Vendor) Vendor {
	return Vendor{ID: v.ID, Name: v.Name, Email: v.Email, Image: v.Image}
}

func NewVendors(vs []model.Vendor) []Vendor {
	return Collection(vs, NewVendor)
}

type ProductComment struct {
	ID          int64     `json:"id"`
	Comment     string    `json:"comment"`
	Rating      int       `json:"rating"`
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProductComment(c model.ProductComment) ProductComment {
	out := ProductComment{
		ID:        c.ID,
		Comment:   c.Comment,
		Rating:    c.Rating,
		UserID:    c.UserID,
		UserName:  c.User.Name,
		ProductID: c.ProductID,
		CreatedAt: c.CreatedAt,
	}
	if c.Product != nil {
		out.ProductName = c.Product.ProductName
	}
	return out
}

func NewProductComments(cs []model.ProductComment) []ProductComment {
	return Collection(cs, NewProductComment)
}
