package usecase

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/resource"
	"storefront/internal/validator"

	"github.com/shopspring/decimal"
)

type ProductDetailUsecase struct {
	details  repo.Records[model.ProductDetail]
	products repo.Records[model.Product]
	cache    repo.ProductPageCache
	files    FileStore
	v        *validator.Validator
}

func NewProductDetailUsecase(
	details repo.Records[model.ProductDetail],
	products repo.Records[model.Product],
	cache repo.ProductPageCache,
	files FileStore,
	v *validator.Validator,
) *ProductDetailUsecase {
	return &ProductDetailUsecase{details: details, products: products, cache: cache, files: files, v: v}
}

// POST/PUT /product-details
type ProductDetailInput struct {
	ProductID int64            `json:"product_id" validate:"required"`
	Size      string           `json:"size" validate:"required,max=50"`
	Color     string           `json:"color" validate:"required,max=50"`
	Price     *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Discount  *decimal.Decimal `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Stock     *int             `json:"stock" validate:"required,gte=0"`
	Upload    *Upload          `json:"-"`
}

func (in ProductDetailInput) toModel() model.ProductDetail {
	d := model.ProductDetail{
		ProductID: in.ProductID,
		Size:      in.Size,
		Color:     in.Color,
		Price:     *in.Price,
		Stock:     *in.Stock,
	}
	if in.Discount != nil {
		d.Discount = decimal.NewNullDecimal(*in.Discount)
	}
	return d
}

func (u *ProductDetailUsecase) Index(ctx context.Context) ([]resource.ProductDetail, error) {
	ds, err := u.details.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list product details: %w", err)
	}
	return resource.NewProductDetails(ds), nil
}

func (u *ProductDetailUsecase) Show(ctx context.Context, id int64) (resource.ProductDetail, error) {
	d, err := find(ctx, u.details, id, "product detail")
	if err != nil {
		return resource.ProductDetail{}, err
	}
	return resource.NewProductDetail(d), nil
}

// 画像必須
func (u *ProductDetailUsecase) Store(ctx context.Context, in ProductDetailInput) (resource.ProductDetail, error) {
	rules := append(u.rules(in), validator.Present("image", in.Upload != nil), imageRule("image", in.Upload))
	if err := u.v.Gate(ctx, &in, rules...); err != nil {
		return resource.ProductDetail{}, err
	}

	ref, err := putUpload(ctx, u.files, in.Upload)
	if err != nil {
		return resource.ProductDetail{}, err
	}

	d := in.toModel()
	d.Image = ref
	if err := u.details.Create(ctx, &d); err != nil {
		discardUploads(ctx, u.files, []string{ref})
		return resource.ProductDetail{}, writeFailed("create", "product detail", err)
	}

	u.cache.Invalidate(ctx)
	return resource.NewProductDetail(d), nil
}

// 画像が来たときだけ差し替える
func (u *ProductDetailUsecase) Update(ctx context.Context, id int64, in ProductDetailInput) (resource.ProductDetail, error) {
	rules := append(u.rules(in), imageRule("image", in.Upload))
	if err := u.v.Gate(ctx, &in, rules...); err != nil {
		return resource.ProductDetail{}, err
	}

	current, err := find(ctx, u.details, id, "product detail")
	if err != nil {
		return resource.ProductDetail{}, err
	}

	changes := in.toModel()
	cols := []string{"product_id", "size", "color", "price", "discount", "stock"}
	err = swapUpload(ctx, u.files, in.Upload, current.Image, func(ref string) error {
		if ref != "" {
			changes.Image = ref
			cols = append(cols, "image")
		}
		if err := u.details.Update(ctx, id, changes, cols...); err != nil {
			return writeFailed("update", "product detail", err)
		}
		return nil
	})
	if err != nil {
		return resource.ProductDetail{}, err
	}

	u.cache.Invalidate(ctx)
	return u.Show(ctx, id)
}

// ファイルを消してから行を消す
func (u *ProductDetailUsecase) Destroy(ctx context.Context, id int64) error {
	d, err := find(ctx, u.details, id, "product detail")
	if err != nil {
		return err
	}
	if d.Image != "" {
		if err := u.files.Delete(ctx, d.Image); err != nil {
			return fmt.Errorf("delete image of detail %d: %w", id, err)
		}
	}
	if err := deleteRecord(ctx, u.details, id, "product detail"); err != nil {
		return err
	}
	u.cache.Invalidate(ctx)
	return nil
}

func (u *ProductDetailUsecase) rules(in ProductDetailInput) []validator.Rule {
	return []validator.Rule{
		validator.Exists("product_id", func(ctx context.Context) (bool, error) {
			return u.products.Exists(ctx, in.ProductID)
		}),
	}
}
