package resource

import (
	"testing"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detail(price string, discount string) model.ProductDetail {
	d := model.ProductDetail{ID: 11, ProductID: 1, Size: "M", Color: "red", Image: "/uploads/a.png", Price: decimal.RequireFromString(price), Stock: 3}
	if discount != "" {
		d.Discount = decimal.NewNullDecimal(decimal.RequireFromString(discount))
	}
	return d
}

func TestNewProduct_FirstDetailAndFavorite(t *testing.T) {
	img := "/uploads/v.png"
	p := model.Product{
		ID:          1,
		ProductName: "Runner",
		VendorID:    2,
		Vendor:      model.Vendor{Name: "Acme", Image: &img},
		Categories:  []model.Category{{CategoryName: "Shoes"}, {CategoryName: "Summer"}},
		Details:     []model.ProductDetail{detail("80.00", "25"), detail("10", "")},
	}

	out := NewProduct(p, map[int64]int64{1: 42})
	assert.Equal(t, "Acme", out.VendorName)
	assert.Equal(t, &img, out.VendorImage)
	assert.Equal(t, "Shoes, Summer", out.Categories)
	require.NotNil(t, out.FinalPrice)
	assert.Equal(t, 80.0, *out.OriginalPrice)
	assert.Equal(t, 60.0, *out.FinalPrice)
	assert.Equal(t, 25.0, *out.Discount)
	assert.True(t, out.IsFavorite)
	assert.Equal(t, int64(42), *out.FavoriteID)

	other := NewProduct(model.Product{ID: 2}, map[int64]int64{1: 42})
	assert.False(t, other.IsFavorite)
	assert.Nil(t, other.FavoriteID)
	assert.Nil(t, other.FinalPrice)
	assert.Equal(t, "", other.Categories)
}

func TestNewProductDetail_DiscountLabel(t *testing.T) {
	out := NewProductDetail(detail("19.99", "10"))
	assert.Equal(t, 19.99, out.OriginalPrice)
	assert.Equal(t, 17.99, out.FinalPrice)
	require.NotNil(t, out.Discount)
	assert.Equal(t, "10%", *out.Discount)

	// 0%は割引なし
	out = NewProductDetail(detail("19.99", "0"))
	assert.Nil(t, out.Discount)
	assert.Equal(t, 19.99, out.FinalPrice)
}

// カートは割引後、お気に入りは定価
func TestCartAndFavoritePrices(t *testing.T) {
	d := detail("50", "20")
	prod := model.Product{ID: 1, ProductName: "Cap"}

	c := NewCart(model.Cart{ID: 1, Quantity: 2, UserID: 9, Product: prod, ProductDetail: d})
	assert.Equal(t, 40.0, c.Price)
	assert.Equal(t, int64(11), c.DetailsID)

	f := NewFavorite(model.Favorite{ID: 1, UserID: 9, User: model.User{Name: "Kai"}, Product: prod, ProductDetail: d})
	assert.Equal(t, 50.0, f.Price)
	assert.Equal(t, "Kai", f.UserName)
}

func TestCollection_EmptyIsNotNil(t *testing.T) {
	out := NewProducts(nil, nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Equal(t, []int64{1, 3}, ProductIDs([]model.Product{{ID: 1}, {ID: 3}}))
}
