package usecase

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/resource"
	"storefront/internal/validator"
)

type FavoriteUsecase struct {
	favorites repo.Records[model.Favorite]
	products  repo.Records[model.Product]
	details   repo.Records[model.ProductDetail]
	v         *validator.Validator
}

func NewFavoriteUsecase(
	favorites repo.Records[model.Favorite],
	products repo.Records[model.Product],
	details repo.Records[model.ProductDetail],
	v *validator.Validator,
) *FavoriteUsecase {
	return &FavoriteUsecase{favorites: favorites, products: products, details: details, v: v}
}

type FavoriteInput struct {
	ProductID       int64 `json:"product_id" validate:"required"`
	ProductDetailID int64 `json:"product_detail_id" validate:"required"`
}

func (u *FavoriteUsecase) Index(ctx context.Context, userID int64) ([]resource.Favorite, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	fs, err := u.favorites.FetchAllBy(ctx, "user_id", userID, lineRelations...)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return resource.NewFavorites(fs), nil
}

func (u *FavoriteUsecase) Store(ctx context.Context, userID int64, in FavoriteInput) (resource.Favorite, error) {
	if err := requireUser(userID); err != nil {
		return resource.Favorite{}, err
	}
	if err := u.v.Gate(ctx, &in, lineRules(u.products, u.details, in.ProductID, in.ProductDetailID)...); err != nil {
		return resource.Favorite{}, err
	}

	f := model.Favorite{UserID: userID, ProductID: in.ProductID, ProductDetailID: in.ProductDetailID}
	if err := u.favorites.Create(ctx, &f); err != nil {
		return resource.Favorite{}, writeFailed("create", "favorite", err)
	}

	created, err := find(ctx, u.favorites, f.ID, "favorite", lineRelations...)
	if err != nil {
		return resource.Favorite{}, err
	}
	return resource.NewFavorite(created), nil
}

func (u *FavoriteUsecase) Show(ctx context.Context, userID int64, id int64) (resource.Favorite, error) {
	f, err := u.owned(ctx, userID, id)
	if err != nil {
		return resource.Favorite{}, err
	}
	return resource.NewFavorite(f), nil
}

func (u *FavoriteUsecase) Destroy(ctx context.Context, userID int64, id int64) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	return deleteRecord(ctx, u.favorites, id, "favorite")
}

func (u *FavoriteUsecase) owned(ctx context.Context, userID int64, id int64) (model.Favorite, error) {
	if err := requireUser(userID); err != nil {
		return model.Favorite{}, err
	}
	f, err := find(ctx, u.favorites, id, "favorite", lineRelations...)
	if err != nil {
		return model.Favorite{}, err
	}
	if err := requireOwner(f.UserID, userID); err != nil {
		return model.Favorite{}, err
	}
	return f, nil
}
