package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Category
// =====================

func TestCategoryUsecase_Update_SameNameIsSelfExcluded(t *testing.T) {
	categories := new(recordsMock[model.Category])
	cache := new(pageCacheMock)
	uc := usecase.NewCategoryUsecase(categories, cache, validator.New())

	categories.On("Taken", mock.Anything, "category_name", "Shoes", int64(2)).Return(false, nil)
	categories.On("Update", mock.Anything, int64(2), model.Category{CategoryName: "Shoes"}, []string{"category_name"}).Return(nil)
	categories.On("Find", mock.Anything, int64(2)).Return(model.Category{ID: 2, CategoryName: "Shoes"}, nil)
	cache.On("Invalidate", mock.Anything).Return()

	out, err := uc.Update(context.Background(), 2, usecase.CategoryInput{CategoryName: "Shoes"})
	require.NoError(t, err)
	assert.Equal(t, "Shoes", out.CategoryName)
	assert.NotNil(t, out.Products)
}

func TestCategoryUsecase_Update_NameTakenByAnother(t *testing.T) {
	categories := new(recordsMock[model.Category])
	uc := usecase.NewCategoryUsecase(categories, new(pageCacheMock), validator.New())

	categories.On("Taken", mock.Anything, "category_name", "Shoes", int64(3)).Return(true, nil)

	_, err := uc.Update(context.Background(), 3, usecase.CategoryInput{CategoryName: "Shoes"})
	assertInvalid(t, err, "category_name")
	categories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryUsecase_Store_StorageConflictIs422(t *testing.T) {
	categories := new(recordsMock[model.Category])
	uc := usecase.NewCategoryUsecase(categories, new(pageCacheMock), validator.New())

	categories.On("Taken", mock.Anything, "category_name", "Hats", int64(0)).Return(false, nil)
	categories.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("insert: %w", repo.ErrConflict))

	_, err := uc.Store(context.Background(), usecase.CategoryInput{CategoryName: "Hats"})
	assertStatus(t, err, http.StatusUnprocessableEntity)
}

func TestCategoryUsecase_Destroy_NotFound(t *testing.T) {
	categories := new(recordsMock[model.Category])
	uc := usecase.NewCategoryUsecase(categories, new(pageCacheMock), validator.New())

	categories.On("Delete", mock.Anything, int64(5)).Return(repo.ErrNotFound)

	assertStatus(t, uc.Destroy(context.Background(), 5), http.StatusNotFound)
}

// =====================
// Vendor
// =====================

func TestVendorUsecase_Store_HashesPassword(t *testing.T) {
	vendors := new(recordsMock[model.Vendor])
	uc := usecase.NewVendorUsecase(vendors, new(recordsMock[model.Product]), new(productQueriesMock), new(pageCacheMock), new(fileStoreMock), validator.New())

	vendors.On("Taken", mock.Anything, "email", "shop@example.com", int64(0)).Return(false, nil)
	vendors.On("Create", mock.Anything, mock.MatchedBy(func(v *model.Vendor) bool {
		return bcrypt.CompareHashAndPassword([]byte(v.Password), []byte("secret1")) == nil
	})).Run(func(args mock.Arguments) { args.Get(1).(*model.Vendor).ID = 4 }).Return(nil)

	out, err := uc.Store(context.Background(), usecase.VendorInput{
		Name:     "Shop",
		Email:    "shop@example.com",
		Password: ptr("secret1"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.ID)
	assert.Nil(t, out.Image)
}

func TestVendorUsecase_Store_Validation(t *testing.T) {
	vendors := new(recordsMock[model.Vendor])
	uc := usecase.NewVendorUsecase(vendors, new(recordsMock[model.Product]), new(productQueriesMock), new(pageCacheMock), new(fileStoreMock), validator.New())

	vendors.On("Taken", mock.Anything, "email", "shop@example.com", int64(0)).Return(true, nil)

	_, err := uc.Store(context.Background(), usecase.VendorInput{
		Name:  "Shop",
		Email: "shop@example.com",
		Image: pngUpload("logo.gif"),
	})
	assertInvalid(t, err, "password", "email", "image")
	vendors.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVendorUsecase_Update_ReplacesImage(t *testing.T) {
	vendors := new(recordsMock[model.Vendor])
	files := new(fileStoreMock)
	cache := new(pageCacheMock)
	uc := usecase.NewVendorUsecase(vendors, new(recordsMock[model.Product]), new(productQueriesMock), cache, files, validator.New())

	old := "/uploads/old.png"
	var order []string
	vendors.On("Taken", mock.Anything, "email", "shop@example.com", int64(4)).Return(false, nil)
	vendors.On("Find", mock.Anything, int64(4)).Return(model.Vendor{ID: 4, Image: &old}, nil)
	files.On("Put", mock.Anything, "logo.png").Run(func(mock.Arguments) { order = append(order, "put") }).Return("/uploads/new.png", nil)
	vendors.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(v model.Vendor) bool {
		return v.Image != nil && *v.Image == "/uploads/new.png"
	}), []string{"name", "email", "image"}).Run(func(mock.Arguments) { order = append(order, "row") }).Return(nil)
	files.On("Delete", mock.Anything, old).Run(func(mock.Arguments) { order = append(order, "delete old") }).Return(nil)
	cache.On("Invalidate", mock.Anything).Return()

	_, err := uc.Update(context.Background(), 4, usecase.VendorInput{
		Name:  "Shop",
		Email: "shop@example.com",
		Image: pngUpload("logo.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"put", "row", "delete old"}, order)
}

func TestVendorUsecase_Update_RowFailureKeepsOldImage(t *testing.T) {
	vendors := new(recordsMock[model.Vendor])
	files := new(fileStoreMock)
	cache := new(pageCacheMock)
	uc := usecase.NewVendorUsecase(vendors, new(recordsMock[model.Product]), new(productQueriesMock), cache, files, validator.New())

	old := "/uploads/old.png"
	vendors.On("Taken", mock.Anything, "email", "shop@example.com", int64(4)).Return(false, nil)
	vendors.On("Find", mock.Anything, int64(4)).Return(model.Vendor{ID: 4, Image: &old}, nil)
	files.On("Put", mock.Anything, "logo.png").Return("/uploads/new.png", nil)
	vendors.On("Update", mock.Anything, int64(4), mock.Anything, mock.Anything).Return(repo.ErrNotFound)
	files.On("Delete", mock.Anything, "/uploads/new.png").Return(nil)

	_, err := uc.Update(context.Background(), 4, usecase.VendorInput{
		Name:  "Shop",
		Email: "shop@example.com",
		Image: pngUpload("logo.png"),
	})
	assertStatus(t, err, http.StatusNotFound)
	files.AssertCalled(t, "Delete", mock.Anything, "/uploads/new.png")
	files.AssertNotCalled(t, "Delete", mock.Anything, old)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestVendorUsecase_Destroy_RemovesImage(t *testing.T) {
	vendors := new(recordsMock[model.Vendor])
	products := new(recordsMock[model.Product])
	files := new(fileStoreMock)
	cache := new(pageCacheMock)
	uc := usecase.NewVendorUsecase(vendors, products, new(productQueriesMock), cache, files, validator.New())

	img := "/uploads/logo.png"
	vendors.On("Find", mock.Anything, int64(4)).Return(model.Vendor{ID: 4, Image: &img}, nil)
	products.On("FetchAllBy", mock.Anything, "vendor_id", int64(4)).Return([]model.Product{}, nil)
	files.On("Delete", mock.Anything, img).Return(nil)
	vendors.On("Delete", mock.Anything, int64(4)).Return(nil)
	cache.On("Invalidate", mock.Anything).Return()

	require.NoError(t, uc.Destroy(context.Background(), 4))
	files.AssertCalled(t, "Delete", mock.Anything, img)
}

func TestVendorUsecase_Destroy_CascadesProducts(t *testing.T) {
	vendors := new(recordsMock[model.Vendor])
	products := new(recordsMock[model.Product])
	queries := new(productQueriesMock)
	files := new(fileStoreMock)
	cache := new(pageCacheMock)
	uc := usecase.NewVendorUsecase(vendors, products, queries, cache, files, validator.New())

	var order []string
	vendors.On("Find", mock.Anything, int64(4)).Return(model.Vendor{ID: 4}, nil)
	products.On("FetchAllBy", mock.Anything, "vendor_id", int64(4)).Return([]model.Product{
		{ID: 10, VendorID: 4, Details: []model.ProductDetail{{ID: 1, Image: "/uploads/a.png"}, {ID: 2, Image: "/uploads/b.png"}}},
		{ID: 11, VendorID: 4},
	}, nil)
	files.On("Delete", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		order = append(order, "file "+args.String(1))
	}).Return(nil)
	queries.On("DeleteCascade", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		order = append(order, fmt.Sprintf("product %d", args.Get(1).(int64)))
	}).Return(nil)
	vendors.On("Delete", mock.Anything, int64(4)).Run(func(mock.Arguments) { order = append(order, "vendor") }).Return(nil)
	cache.On("Invalidate", mock.Anything).Return()

	require.NoError(t, uc.Destroy(context.Background(), 4))
	assert.Equal(t, []string{
		"file /uploads/a.png", "file /uploads/b.png", "product 10",
		"product 11",
		"vendor",
	}, order)
}

func TestVendorUsecase_Destroy_ProductFailureKeepsVendor(t *testing.T) {
	vendors := new(recordsMock[model.Vendor])
	products := new(recordsMock[model.Product])
	queries := new(productQueriesMock)
	uc := usecase.NewVendorUsecase(vendors, products, queries, new(pageCacheMock), new(fileStoreMock), validator.New())

	vendors.On("Find", mock.Anything, int64(4)).Return(model.Vendor{ID: 4}, nil)
	products.On("FetchAllBy", mock.Anything, "vendor_id", int64(4)).Return([]model.Product{{ID: 10, VendorID: 4}}, nil)
	queries.On("DeleteCascade", mock.Anything, int64(10)).Return(fmt.Errorf("boom"))

	require.Error(t, uc.Destroy(context.Background(), 4))
	vendors.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// =====================
// ProductDetail
// =====================

func TestProductDetailUsecase_Store_RequiresImage(t *testing.T) {
	details := new(recordsMock[model.ProductDetail])
	products := new(recordsMock[model.Product])
	uc := usecase.NewProductDetailUsecase(details, products, new(pageCacheMock), new(fileStoreMock), validator.New())

	products.On("Exists", mock.Anything, int64(1)).Return(true, nil)

	_, err := uc.Store(context.Background(), usecase.ProductDetailInput{
		ProductID: 1,
		Size:      "L",
		Color:     "blue",
		Price:     ptr(decimal.NewFromInt(50)),
		Stock:     ptr(0),
	})
	assertInvalid(t, err, "image")
	details.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductDetailUsecase_Store_ShapesDiscount(t *testing.T) {
	details := new(recordsMock[model.ProductDetail])
	products := new(recordsMock[model.Product])
	files := new(fileStoreMock)
	cache := new(pageCacheMock)
	uc := usecase.NewProductDetailUsecase(details, products, cache, files, validator.New())

	products.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	files.On("Put", mock.Anything, "blue.png").Return("/uploads/blue.png", nil)
	details.On("Create", mock.Anything, mock.Anything).Return(nil)
	cache.On("Invalidate", mock.Anything).Return()

	out, err := uc.Store(context.Background(), usecase.ProductDetailInput{
		ProductID: 1,
		Size:      "L",
		Color:     "blue",
		Price:     ptr(decimal.NewFromInt(100)),
		Discount:  ptr(decimal.NewFromInt(25)),
		Stock:     ptr(2),
		Upload:    pngUpload("blue.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/blue.png", out.Image)
	assert.Equal(t, 75.0, out.FinalPrice)
	require.NotNil(t, out.Discount)
	assert.Equal(t, "25%", *out.Discount)
}

func TestProductDetailUsecase_Destroy_FileThenRow(t *testing.T) {
	details := new(recordsMock[model.ProductDetail])
	files := new(fileStoreMock)
	cache := new(pageCacheMock)
	uc := usecase.NewProductDetailUsecase(details, new(recordsMock[model.Product]), cache, files, validator.New())

	var order []string
	details.On("Find", mock.Anything, int64(9)).Return(model.ProductDetail{ID: 9, Image: "/uploads/v.png"}, nil)
	files.On("Delete", mock.Anything, "/uploads/v.png").Run(func(mock.Arguments) { order = append(order, "file") }).Return(nil)
	details.On("Delete", mock.Anything, int64(9)).Run(func(mock.Arguments) { order = append(order, "row") }).Return(nil)
	cache.On("Invalidate", mock.Anything).Return()

	require.NoError(t, uc.Destroy(context.Background(), 9))
	assert.Equal(t, []string{"file", "row"}, order)
}

func TestProductDetailUsecase_Update_RowFailureKeepsOldImage(t *testing.T) {
	details := new(recordsMock[model.ProductDetail])
	products := new(recordsMock[model.Product])
	files := new(fileStoreMock)
	cache := new(pageCacheMock)
	uc := usecase.NewProductDetailUsecase(details, products, cache, files, validator.New())

	products.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	details.On("Find", mock.Anything, int64(9)).Return(model.ProductDetail{ID: 9, ProductID: 1, Image: "/uploads/old.png"}, nil)
	files.On("Put", mock.Anything, "red.png").Return("/uploads/red.png", nil)
	details.On("Update", mock.Anything, int64(9), mock.Anything, mock.Anything).Return(fmt.Errorf("update: %w", repo.ErrInvalidReference))
	files.On("Delete", mock.Anything, "/uploads/red.png").Return(nil)

	_, err := uc.Update(context.Background(), 9, usecase.ProductDetailInput{
		ProductID: 1,
		Size:      "L",
		Color:     "red",
		Price:     ptr(decimal.NewFromInt(50)),
		Stock:     ptr(1),
		Upload:    pngUpload("red.png"),
	})
	assertStatus(t, err, http.StatusUnprocessableEntity)
	files.AssertCalled(t, "Delete", mock.Anything, "/uploads/red.png")
	files.AssertNotCalled(t, "Delete", mock.Anything, "/uploads/old.png")
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}
