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

type OrderDetailUsecase struct {
	orders repo.Records[model.OrderDetail]
	users  repo.Records[model.User]
	v      *validator.Validator
}

func NewOrderDetailUsecase(orders repo.Records[model.OrderDetail], users repo.Records[model.User], v *validator.Validator) *OrderDetailUsecase {
	return &OrderDetailUsecase{orders: orders, users: users, v: v}
}

// user_id は本人でなければ403
type OrderDetailInput struct {
	TotalAmount     *decimal.Decimal `json:"total_amount" validate:"required,gte=0"`
	OrderStatus     *int             `json:"order_status" validate:"required,gte=0,lte=255"`
	ShippingAddress string           `json:"shipping_address" validate:"required,max=255"`
	ShippingCost    *decimal.Decimal `json:"shipping_cost" validate:"required,gte=0"`
	UserID          int64            `json:"user_id" validate:"required"`
}

func (in OrderDetailInput) toModel() model.OrderDetail {
	return model.OrderDetail{
		UserID:          in.UserID,
		TotalAmount:     *in.TotalAmount,
		OrderStatus:     uint8(*in.OrderStatus),
		ShippingAddress: in.ShippingAddress,
		ShippingCost:    *in.ShippingCost,
	}
}

func (u *OrderDetailUsecase) Index(ctx context.Context, userID int64) ([]resource.OrderDetail, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	list, err := u.orders.FetchAllBy(ctx, "user_id", userID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	return resource.NewOrderDetails(list), nil
}

func (u *OrderDetailUsecase) Store(ctx context.Context, userID int64, in OrderDetailInput) (resource.OrderDetail, error) {
	if err := u.gate(ctx, userID, in); err != nil {
		return resource.OrderDetail{}, err
	}

	o := in.toModel()
	if err := u.orders.Create(ctx, &o); err != nil {
		return resource.OrderDetail{}, writeFailed("create", "order detail", err)
	}
	return resource.NewOrderDetail(o), nil
}

func (u *OrderDetailUsecase) Show(ctx context.Context, userID int64, id int64) (resource.OrderDetail, error) {
	o, err := u.owned(ctx, userID, id)
	if err != nil {
		return resource.OrderDetail{}, err
	}
	return resource.NewOrderDetail(o), nil
}

func (u *OrderDetailUsecase) Update(ctx context.Context, userID int64, id int64, in OrderDetailInput) (resource.OrderDetail, error) {
	if err := u.gate(ctx, userID, in); err != nil {
		return resource.OrderDetail{}, err
	}
	if _, err := u.owned(ctx, userID, id); err != nil {
		return resource.OrderDetail{}, err
	}

	cols := []string{"total_amount", "order_status", "shipping_address", "shipping_cost", "user_id"}
	if err := u.orders.Update(ctx, id, in.toModel(), cols...); err != nil {
		return resource.OrderDetail{}, writeFailed("update", "order detail", err)
	}
	return u.Show(ctx, userID, id)
}

func (u *OrderDetailUsecase) Destroy(ctx context.Context, userID int64, id int64) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	return deleteRecord(ctx, u.orders, id, "order detail")
}

// 401 -> 422 -> 403
func (u *OrderDetailUsecase) gate(ctx context.Context, userID int64, in OrderDetailInput) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	rule := validator.Exists("user_id", func(ctx context.Context) (bool, error) {
		return u.users.Exists(ctx, in.UserID)
	})
	if err := u.v.Gate(ctx, &in, rule); err != nil {
		return err
	}
	return requireOwner(in.UserID, userID)
}

func (u *OrderDetailUsecase) owned(ctx context.Context, userID int64, id int64) (model.OrderDetail, error) {
	if err := requireUser(userID); err != nil {
		return model.OrderDetail{}, err
	}
	o, err := find(ctx, u.orders, id, "order detail")
	if err != nil {
		return model.OrderDetail{}, err
	}
	if err := requireOwner(o.UserID, userID); err != nil {
		return model.OrderDetail{}, err
	}
	return o, nil
}
