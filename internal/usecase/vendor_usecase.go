package usecase

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/resource"
	"storefront/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

type VendorUsecase struct {
	vendors  repo.Records[model.Vendor]
	products repo.Records[model.Product]
	queries  repo.ProductRepository
	cache    repo.ProductPageCache
	files    FileStore
	v        *validator.Validator
}

// DI
func NewVendorUsecase(
	vendors repo.Records[model.Vendor],
	products repo.Records[model.Product],
	queries repo.ProductRepository,
	cache repo.ProductPageCache,
	files FileStore,
	v *validator.Validator,
) *VendorUsecase {
	return &VendorUsecase{vendors: vendors, products: products, queries: queries, cache: cache, files: files, v: v}
}

// passwordは更新時のみ任意
type VendorInput struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Image    *Upload `json:"-"`
}

func (u *VendorUsecase) Index(ctx context.Context) ([]resource.Vendor, error) {
	vs, err := u.vendors.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return resource.NewVendors(vs), nil
}

func (u *VendorUsecase) Show(ctx context.Context, id int64) (resource.Vendor, error) {
	v, err := find(ctx, u.vendors, id, "vendor")
	if err != nil {
		return resource.Vendor{}, err
	}
	return resource.NewVendor(v), nil
}

func (u *VendorUsecase) Store(ctx context.Context, in VendorInput) (resource.Vendor, error) {
	rules := []validator.Rule{
		validator.Present("password", in.Password != nil),
		u.uniqueEmail(in.Email, 0),
		imageRule("image", in.Image),
	}
	if err := u.v.Gate(ctx, &in, rules...); err != nil {
		return resource.Vendor{}, err
	}

	hash, err := hashPassword(*in.Password)
	if err != nil {
		return resource.Vendor{}, err
	}
	v := model.Vendor{Name: in.Name, Email: in.Email, Password: hash}

	if in.Image != nil {
		ref, err := putUpload(ctx, u.files, in.Image)
		if err != nil {
			return resource.Vendor{}, err
		}
		v.Image = &ref
	}

	if err := u.vendors.Create(ctx, &v); err != nil {
		if v.Image != nil {
			discardUploads(ctx, u.files, []string{*v.Image})
		}
		return resource.Vendor{}, writeFailed("create", "vendor", err)
	}
	return resource.NewVendor(v), nil
}

func (u *VendorUsecase) Update(ctx context.Context, id int64, in VendorInput) (resource.Vendor, error) {
	rules := []validator.Rule{u.uniqueEmail(in.Email, id), imageRule("image", in.Image)}
	if err := u.v.Gate(ctx, &in, rules...); err != nil {
		return resource.Vendor{}, err
	}

	current, err := find(ctx, u.vendors, id, "vendor")
	if err != nil {
		return resource.Vendor{}, err
	}

	changes := model.Vendor{Name: in.Name, Email: in.Email}
	cols := []string{"name", "email"}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return resource.Vendor{}, err
		}
		changes.Password = hash
		cols = append(cols, "password")
	}
	old := ""
	if current.Image != nil {
		old = *current.Image
	}
	err = swapUpload(ctx, u.files, in.Image, old, func(ref string) error {
		if ref != "" {
			changes.Image = &ref
			cols = append(cols, "image")
		}
		if err := u.vendors.Update(ctx, id, changes, cols...); err != nil {
			return writeFailed("update", "vendor", err)
		}
		return nil
	})
	if err != nil {
		return resource.Vendor{}, err
	}

	u.cache.Invalidate(ctx)
	return u.Show(ctx, id)
}

// 商品ごとに「バリエーション画像 → 商品行」を消してから業者を消す
func (u *VendorUsecase) Destroy(ctx context.Context, id int64) error {
	v, err := find(ctx, u.vendors, id, "vendor")
	if err != nil {
		return err
	}

	products, err := u.products.FetchAllBy(ctx, "vendor_id", id, "Details")
	if err != nil {
		return fmt.Errorf("list products of vendor %d: %w", id, err)
	}
	for _, p := range products {
		for _, d := range p.Details {
			if d.Image == "" {
				continue
			}
			if err := u.files.Delete(ctx, d.Image); err != nil {
				return fmt.Errorf("delete image of detail %d: %w", d.ID, err)
			}
		}
		if err := u.queries.DeleteCascade(ctx, p.ID); err != nil {
			return writeFailed("delete", "product", err)
		}
	}

	if v.Image != nil && *v.Image != "" {
		if err := u.files.Delete(ctx, *v.Image); err != nil {
			return fmt.Errorf("delete image of vendor %d: %w", id, err)
		}
	}
	if err := deleteRecord(ctx, u.vendors, id, "vendor"); err != nil {
		return err
	}
	u.cache.Invalidate(ctx)
	return nil
}

func (u *VendorUsecase) uniqueEmail(email string, exceptID int64) validator.Rule {
	return validator.Unique("email", func(ctx context.Context) (bool, error) {
		return u.vendors.Taken(ctx, "email", email, exceptID)
	})
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
