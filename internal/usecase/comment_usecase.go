package usecase

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/resource"
	"storefront/internal/validator"
)

var commentRelations = []string{"User", "Product"}

// 読むのは誰でも、書くのは本人だけ
type CommentUsecase struct {
	comments repo.Records[model.ProductComment]
	products repo.Records[model.Product]
	v        *validator.Validator
}

func NewCommentUsecase(comments repo.Records[model.ProductComment], products repo.Records[model.Product], v *validator.Validator) *CommentUsecase {
	return &CommentUsecase{comments: comments, products: products, v: v}
}

type CommentInput struct {
	Comment   string `json:"comment" validate:"required,max=500"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	ProductID int64  `json:"product_id" validate:"required"`
}

func (u *CommentUsecase) Index(ctx context.Context) ([]resource.ProductComment, error) {
	cs, err := u.comments.FetchAll(ctx, commentRelations...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return resource.NewProductComments(cs), nil
}

func (u *CommentUsecase) Show(ctx context.Context, id int64) (resource.ProductComment, error) {
	c, err := find(ctx, u.comments, id, "comment", commentRelations...)
	if err != nil {
		return resource.ProductComment{}, err
	}
	return resource.NewProductComment(c), nil
}

func (u *CommentUsecase) Store(ctx context.Context, userID int64, in CommentInput) (resource.ProductComment, error) {
	if err := requireUser(userID); err != nil {
		return resource.ProductComment{}, err
	}
	if err := u.v.Gate(ctx, &in, u.productExists(in.ProductID)); err != nil {
		return resource.ProductComment{}, err
	}

	c := model.ProductComment{
		UserID:    userID,
		ProductID: in.ProductID,
		Comment:   in.Comment,
		Rating:    in.Rating,
	}
	if err := u.comments.Create(ctx, &c); err != nil {
		return resource.ProductComment{}, writeFailed("create", "comment", err)
	}
	return u.Show(ctx, c.ID)
}

func (u *CommentUsecase) Update(ctx context.Context, userID int64, id int64, in CommentInput) (resource.ProductComment, error) {
	if err := requireUser(userID); err != nil {
		return resource.ProductComment{}, err
	}
	if err := u.v.Gate(ctx, &in, u.productExists(in.ProductID)); err != nil {
		return resource.ProductComment{}, err
	}
	if err := u.authorize(ctx, userID, id); err != nil {
		return resource.ProductComment{}, err
	}

	changes := model.ProductComment{ProductID: in.ProductID, Comment: in.Comment, Rating: in.Rating}
	if err := u.comments.Update(ctx, id, changes, "comment", "rating", "product_id"); err != nil {
		return resource.ProductComment{}, writeFailed("update", "comment", err)
	}
	return u.Show(ctx, id)
}

func (u *CommentUsecase) Destroy(ctx context.Context, userID int64, id int64) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := u.authorize(ctx, userID, id); err != nil {
		return err
	}
	return deleteRecord(ctx, u.comments, id, "comment")
}

func (u *CommentUsecase) authorize(ctx context.Context, userID int64, id int64) error {
	c, err := find(ctx, u.comments, id, "comment")
	if err != nil {
		return err
	}
	return requireOwner(c.UserID, userID)
}

func (u *CommentUsecase) productExists(productID int64) validator.Rule {
	return validator.Exists("product_id", func(ctx context.Context) (bool, error) {
		return u.products.Exists(ctx, productID)
	})
}
