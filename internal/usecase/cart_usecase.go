package usecase

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/resource"
	"storefront/internal/validator"
)

// カート・お気に入りの整形に必要な関連
var lineRelations = []string{"User", "Product.Categories", "ProductDetail"}

// CartUsecase は /carts の業務ロジック。行は作成したユーザーだけが触れる。
type CartUsecase struct {
	carts    repo.Records[model.Cart]
	products repo.Records[model.Product]
	details  repo.Records[model.ProductDetail]
	v        *validator.Validator
}

func NewCartUsecase(
	carts repo.Records[model.Cart],
	products repo.Records[model.Product],
	details repo.Records[model.ProductDetail],
	v *validator.Validator,
) *CartUsecase {
	return &CartUsecase{carts: carts, products: products, details: details, v: v}
}

type CartInput struct {
	Quantity        int   `json:"quantity" validate:"required,gte=1"`
	ProductID       int64 `json:"product_id" validate:"required"`
	ProductDetailID int64 `json:"product_detail_id" validate:"required"`
}

func (u *CartUsecase) Index(ctx context.Context, userID int64) ([]resource.Cart, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	cs, err := u.carts.FetchAllBy(ctx, "user_id", userID, lineRelations...)
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	return resource.NewCarts(cs), nil
}

// 同じ商品・バリエーションでも別行として追加する
func (u *CartUsecase) Store(ctx context.Context, userID int64, in CartInput) (resource.Cart, error) {
	if err := requireUser(userID); err != nil {
		return resource.Cart{}, err
	}
	if err := u.v.Gate(ctx, &in, lineRules(u.products, u.details, in.ProductID, in.ProductDetailID)...); err != nil {
		return resource.Cart{}, err
	}

	c := model.Cart{
		UserID:          userID,
		ProductID:       in.ProductID,
		ProductDetailID: in.ProductDetailID,
		Quantity:        in.Quantity,
	}
	if err := u.carts.Create(ctx, &c); err != nil {
		return resource.Cart{}, writeFailed("create", "cart", err)
	}
	return u.load(ctx, c.ID)
}

func (u *CartUsecase) Show(ctx context.Context, userID int64, id int64) (resource.Cart, error) {
	c, err := u.owned(ctx, userID, id)
	if err != nil {
		return resource.Cart{}, err
	}
	return resource.NewCart(c), nil
}

func (u *CartUsecase) Update(ctx context.Context, userID int64, id int64, in CartInput) (resource.Cart, error) {
	if err := requireUser(userID); err != nil {
		return resource.Cart{}, err
	}
	if err := u.v.Gate(ctx, &in, lineRules(u.products, u.details, in.ProductID, in.ProductDetailID)...); err != nil {
		return resource.Cart{}, err
	}
	if _, err := u.owned(ctx, userID, id); err != nil {
		return resource.Cart{}, err
	}

	changes := model.Cart{
		ProductID:       in.ProductID,
		ProductDetailID: in.ProductDetailID,
		Quantity:        in.Quantity,
	}
	if err := u.carts.Update(ctx, id, changes, "quantity", "product_id", "product_detail_id"); err != nil {
		return resource.Cart{}, writeFailed("update", "cart", err)
	}
	return u.load(ctx, id)
}

func (u *CartUsecase) Destroy(ctx context.Context, userID int64, id int64) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	return deleteRecord(ctx, u.carts, id, "cart")
}

// 401 -> 404 -> 403 の順で判定
func (u *CartUsecase) owned(ctx context.Context, userID int64, id int64) (model.Cart, error) {
	if err := requireUser(userID); err != nil {
		return model.Cart{}, err
	}
	c, err := find(ctx, u.carts, id, "cart", lineRelations...)
	if err != nil {
		return model.Cart{}, err
	}
	if err := requireOwner(c.UserID, userID); err != nil {
		return model.Cart{}, err
	}
	return c, nil
}

func (u *CartUsecase) load(ctx context.Context, id int64) (resource.Cart, error) {
	c, err := find(ctx, u.carts, id, "cart", lineRelations...)
	if err != nil {
		return resource.Cart{}, err
	}
	return resource.NewCart(c), nil
}

// product_id / product_detail_id の存在チェック
func lineRules(products repo.Records[model.Product], details repo.Records[model.ProductDetail], productID, detailID int64) []validator.Rule {
	return []validator.Rule{
		validator.Exists("product_id", func(ctx context.Context) (bool, error) {
			return products.Exists(ctx, productID)
		}),
		validator.Exists("product_detail_id", func(ctx context.Context) (bool, error) {
			return details.Exists(ctx, detailID)
		}),
	}
}
