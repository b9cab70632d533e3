package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/resource"
	"storefront/internal/validator"

	"github.com/shopspring/decimal"
)

type PurchaseUsecase struct {
	purchases repo.Records[model.Purchase]
	users     repo.Records[model.User]
	details   repo.Records[model.ProductDetail]
	v         *validator.Validator
}

func NewPurchaseUsecase(
	purchases repo.Records[model.Purchase],
	users repo.Records[model.User],
	details repo.Records[model.ProductDetail],
	v *validator.Validator,
) *PurchaseUsecase {
	return &PurchaseUsecase{purchases: purchases, users: users, details: details, v: v}
}

// purchase_date 未指定ならDB側の現在時刻
type PurchaseInput struct {
	Quantity        int              `json:"quantity" validate:"required,gte=1"`
	TotalPrice      *decimal.Decimal `json:"total_price" validate:"required,gte=0"`
	PurchaseDate    *time.Time       `json:"purchase_date"`
	UserID          int64            `json:"user_id" validate:"required"`
	ProductDetailID int64            `json:"product_detail_id" validate:"required"`
}

func (in PurchaseInput) toModel() model.Purchase {
	return model.Purchase{
		UserID:          in.UserID,
		ProductDetailID: in.ProductDetailID,
		Quantity:        in.Quantity,
		TotalPrice:      *in.TotalPrice,
		PurchaseDate:    in.PurchaseDate,
	}
}

func (u *PurchaseUsecase) Index(ctx context.Context, userID int64) ([]resource.Purchase, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	ps, err := u.purchases.FetchAllBy(ctx, "user_id", userID, "User")
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return resource.NewPurchases(ps), nil
}

func (u *PurchaseUsecase) Store(ctx context.Context, userID int64, in PurchaseInput) (resource.Purchase, error) {
	if err := requireUser(userID); err != nil {
		return resource.Purchase{}, err
	}
	if err := u.v.Gate(ctx, &in, u.rules(in)...); err != nil {
		return resource.Purchase{}, err
	}
	if err := requireOwner(in.UserID, userID); err != nil {
		return resource.Purchase{}, err
	}

	p := in.toModel()
	if err := u.purchases.Create(ctx, &p); err != nil {
		return resource.Purchase{}, writeFailed("create", "purchase", err)
	}
	return u.load(ctx, p.ID)
}

func (u *PurchaseUsecase) Show(ctx context.Context, userID int64, id int64) (resource.Purchase, error) {
	p, err := u.owned(ctx, userID, id)
	if err != nil {
		return resource.Purchase{}, err
	}
	return resource.NewPurchase(p), nil
}

func (u *PurchaseUsecase) Update(ctx context.Context, userID int64, id int64, in PurchaseInput) (resource.Purchase, error) {
	if err := requireUser(userID); err != nil {
		return resource.Purchase{}, err
	}
	if err := u.v.Gate(ctx, &in, u.rules(in)...); err != nil {
		return resource.Purchase{}, err
	}
	if err := requireOwner(in.UserID, userID); err != nil {
		return resource.Purchase{}, err
	}
	if _, err := u.owned(ctx, userID, id); err != nil {
		return resource.Purchase{}, err
	}

	cols := []string{"quantity", "total_price", "user_id", "product_detail_id"}
	if in.PurchaseDate != nil {
		cols = append(cols, "purchase_date")
	}
	if err := u.purchases.Update(ctx, id, in.toModel(), cols...); err != nil {
		return resource.Purchase{}, writeFailed("update", "purchase", err)
	}
	return u.load(ctx, id)
}

func (u *PurchaseUsecase) Destroy(ctx context.Context, userID int64, id int64) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	return deleteRecord(ctx, u.purchases, id, "purchase")
}

func (u *PurchaseUsecase) owned(ctx context.Context, userID int64, id int64) (model.Purchase, error) {
	if err := requireUser(userID); err != nil {
		return model.Purchase{}, err
	}
	p, err := find(ctx, u.purchases, id, "purchase", "User")
	if err != nil {
		return model.Purchase{}, err
	}
	if err := requireOwner(p.UserID, userID); err != nil {
		return model.Purchase{}, err
	}
	return p, nil
}

func (u *PurchaseUsecase) load(ctx context.Context, id int64) (resource.Purchase, error) {
	p, err := find(ctx, u.purchases, id, "purchase", "User")
	if err != nil {
		return resource.Purchase{}, err
	}
	return resource.NewPurchase(p), nil
}

func (u *PurchaseUsecase) rules(in PurchaseInput) []validator.Rule {
	return []validator.Rule{
		validator.Exists("user_id", func(ctx context.Context) (bool, error) {
			return u.users.Exists(ctx, in.UserID)
		}),
		validator.Exists("product_detail_id", func(ctx context.Context) (bool, error) {
			return u.details.Exists(ctx, in.ProductDetailID)
		}),
	}
}
