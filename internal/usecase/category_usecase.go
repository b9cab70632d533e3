package usecase

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/resource"
	"storefront/internal/validator"
)

type CategoryUsecase struct {
	categories repo.Records[model.Category]
	cache      repo.ProductPageCache
	v          *validator.Validator
}

func NewCategoryUsecase(categories repo.Records[model.Category], cache repo.ProductPageCache, v *validator.Validator) *CategoryUsecase {
	return &CategoryUsecase{categories: categories, cache: cache, v: v}
}

type CategoryInput struct {
	CategoryName string `json:"category_name" validate:"required,max=255"`
}

func (u *CategoryUsecase) Index(ctx context.Context) ([]resource.Category, error) {
	cs, err := u.categories.FetchAll(ctx, "Products")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return resource.NewCategories(cs), nil
}

func (u *CategoryUsecase) Show(ctx context.Context, id int64) (resource.Category, error) {
	c, err := find(ctx, u.categories, id, "category", "Products")
	if err != nil {
		return resource.Category{}, err
	}
	return resource.NewCategory(c), nil
}

func (u *CategoryUsecase) Store(ctx context.Context, in CategoryInput) (resource.Category, error) {
	if err := u.v.Gate(ctx, &in, u.uniqueName(in.CategoryName, 0)); err != nil {
		return resource.Category{}, err
	}

	c := model.Category{CategoryName: in.CategoryName}
	if err := u.categories.Create(ctx, &c); err != nil {
		return resource.Category{}, writeFailed("create", "category", err)
	}
	return resource.NewCategory(c), nil
}

// 同じカテゴリが自分の名前を使い続けるのはOK
func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) (resource.Category, error) {
	if err := u.v.Gate(ctx, &in, u.uniqueName(in.CategoryName, id)); err != nil {
		return resource.Category{}, err
	}

	if err := u.categories.Update(ctx, id, model.Category{CategoryName: in.CategoryName}, "category_name"); err != nil {
		return resource.Category{}, writeFailed("update", "category", err)
	}

	u.cache.Invalidate(ctx)
	return u.Show(ctx, id)
}

func (u *CategoryUsecase) Destroy(ctx context.Context, id int64) error {
	if err := deleteRecord(ctx, u.categories, id, "category"); err != nil {
		return err
	}
	u.cache.Invalidate(ctx)
	return nil
}

func (u *CategoryUsecase) uniqueName(name string, exceptID int64) validator.Rule {
	return validator.Unique("category_name", func(ctx context.Context) (bool, error) {
		return u.categories.Taken(ctx, "category_name", name, exceptID)
	})
}
