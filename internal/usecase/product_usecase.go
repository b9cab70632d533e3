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

const (
	// /products/limited の1ページ件数
	LimitedPerPage = 30
	// 関連商品の最大件数
	RelatedLimit = 7
)

type ProductUsecase struct {
	products   repo.Records[model.Product]
	vendors    repo.Records[model.Vendor]
	categories repo.Records[model.Category]
	queries    repo.ProductRepository
	favorites  repo.FavoriteRepository
	tx         repo.TransactionManager
	cache      repo.ProductPageCache
	files      FileStore
	v          *validator.Validator
}

// DI
func NewProductUsecase(
	products repo.Records[model.Product],
	vendors repo.Records[model.Vendor],
	categories repo.Records[model.Category],
	queries repo.ProductRepository,
	favorites repo.FavoriteRepository,
	tx repo.TransactionManager,
	cache repo.ProductPageCache,
	files FileStore,
	v *validator.Validator,
) *ProductUsecase {
	return &ProductUsecase{
		products:   products,
		vendors:    vendors,
		categories: categories,
		queries:    queries,
		favorites:  favorites,
		tx:         tx,
		cache:      cache,
		files:      files,
		v:          v,
	}
}

// 商品に入れ子で送られるバリエーション。IDがあれば既存行の更新。
type ProductVariantInput struct {
	ID       int64            `json:"id"`
	Size     string           `json:"size" validate:"required,max=50"`
	Color    string           `json:"color" validate:"required,max=50"`
	Image    string           `json:"image" validate:"omitempty,max=255"`
	Price    *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Discount *decimal.Decimal `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Stock    *int             `json:"stock" validate:"required,gte=0"`
	Upload   *Upload          `json:"-"`
}

func (in ProductVariantInput) toModel(productID int64, image string) model.ProductDetail {
	d := model.ProductDetail{
		ProductID: productID,
		Size:      in.Size,
		Color:     in.Color,
		Image:     image,
		Price:     *in.Price,
		Stock:     *in.Stock,
	}
	if in.Discount != nil {
		d.Discount = decimal.NewNullDecimal(*in.Discount)
	}
	return d
}

// POST /products, PUT /products/:id
type ProductInput struct {
	ProductName string  `json:"product_name" validate:"required,max=255"`
	Description *string `json:"description"`
	Brand       *string `json:"brand" validate:"omitempty,max=255"`
	VendorID    int64   `json:"vendor_id" validate:"required"`
	// nilなら紐付けを変更しない
	CategoryIDs []int64               `json:"category_ids" validate:"omitempty,dive,gt=0"`
	Details     []ProductVariantInput `json:"details" validate:"dive"`
}

// /products/limited の1ページ
type ProductPage struct {
	Items    []resource.Product
	Page     int
	LastPage int
	PerPage  int
	Total    int64
}

// GET /products
func (u *ProductUsecase) Index(ctx context.Context, f repo.ProductFilter, userID int64) ([]resource.Product, error) {
	ps, err := u.queries.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return u.shape(ctx, ps, userID)
}

// GET /products/limited
func (u *ProductUsecase) Limited(ctx context.Context, page int, userID int64) (ProductPage, error) {
	if page < 1 {
		page = 1
	}

	cached, ok := u.cache.Get(ctx, page)
	ps, total := cached.Products, cached.Total
	if !ok {
		var err error
		ps, total, err = u.queries.Paginate(ctx, page, LimitedPerPage)
		if err != nil {
			return ProductPage{}, fmt.Errorf("paginate products: %w", err)
		}
		// 最終ページより先は「最終ページ+1」の空ページとして扱う
		if last := lastPageOf(total); page > last+1 {
			page = last + 1
		}
		u.cache.Set(ctx, page, cached.Version, ps, total)
	}

	items, err := u.shape(ctx, ps, userID)
	if err != nil {
		return ProductPage{}, err
	}

	lastPage := lastPageOf(total)
	return ProductPage{
		Items:    items,
		Page:     page,
		LastPage: lastPage,
		PerPage:  LimitedPerPage,
		Total:    total,
	}, nil
}

func lastPageOf(total int64) int {
	last := int((total + LimitedPerPage - 1) / LimitedPerPage)
	if last < 1 {
		return 1
	}
	return last
}

// GET /products/:id
func (u *ProductUsecase) Show(ctx context.Context, id int64, userID int64) (resource.Product, error) {
	p, err := find(ctx, u.products, id, "product", repo.ProductRelations...)
	if err != nil {
		return resource.Product{}, err
	}
	out, err := u.shape(ctx, []model.Product{p}, userID)
	if err != nil {
		return resource.Product{}, err
	}
	return out[0], nil
}

// GET /products/:id/related
func (u *ProductUsecase) Related(ctx context.Context, id int64, userID int64) ([]resource.Product, error) {
	p, err := find(ctx, u.products, id, "product", "Categories")
	if err != nil {
		return nil, err
	}
	ps, err := u.queries.Related(ctx, p, RelatedLimit)
	if err != nil {
		return nil, fmt.Errorf("related products of %d: %w", id, err)
	}
	return u.shape(ctx, ps, userID)
}

// POST /products
func (u *ProductUsecase) Store(ctx context.Context, in ProductInput) (resource.Product, error) {
	rules := append(u.productRules(in, 0),
		validator.Must("details", len(in.Details) > 0, "The details field is required."))
	if err := u.v.Gate(ctx, &in, rules...); err != nil {
		return resource.Product{}, err
	}

	images, uploaded, err := u.putVariantImages(ctx, in.Details)
	if err != nil {
		return resource.Product{}, err
	}

	var id int64
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p := model.Product{
			ProductName: in.ProductName,
			Description: in.Description,
			Brand:       in.Brand,
			VendorID:    in.VendorID,
		}
		if err := r.Products().Create(ctx, &p); err != nil {
			return writeFailed("create", "product", err)
		}

		for i, d := range in.Details {
			pd := d.toModel(p.ID, images[i])
			if err := r.Details().Create(ctx, &pd); err != nil {
				return writeFailed("create", "product detail", err)
			}
		}

		if in.CategoryIDs != nil {
			if err := r.ProductQueries().ReplaceCategories(ctx, p.ID, in.CategoryIDs); err != nil {
				return writeFailed("sync categories of", "product", err)
			}
		}
		id = p.ID
		return nil
	})
	if err != nil {
		discardUploads(ctx, u.files, uploaded)
		return resource.Product{}, err
	}

	u.cache.Invalidate(ctx)
	return u.Show(ctx, id, 0)
}

// PUT /products/:id
// details: IDありは更新、なしは追加。送られなかった既存行はそのまま。
func (u *ProductUsecase) Update(ctx context.Context, id int64, in ProductInput) (resource.Product, error) {
	current, err := find(ctx, u.products, id, "product", "Details")
	if err != nil {
		return resource.Product{}, err
	}

	oldImages := make(map[int64]string, len(current.Details))
	for _, d := range current.Details {
		oldImages[d.ID] = d.Image
	}

	rules := u.productRules(in, id)
	for i, d := range in.Details {
		if d.ID == 0 {
			continue
		}
		_, owned := oldImages[d.ID]
		rules = append(rules, validator.Must(fmt.Sprintf("details.%d.id", i), owned,
			fmt.Sprintf("The selected details.%d.id is invalid.", i)))
	}
	if err := u.v.Gate(ctx, &in, rules...); err != nil {
		return resource.Product{}, err
	}

	images, uploaded, err := u.putVariantImages(ctx, in.Details)
	if err != nil {
		return resource.Product{}, err
	}

	var replaced []string
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		changes := model.Product{
			ProductName: in.ProductName,
			Description: in.Description,
			Brand:       in.Brand,
			VendorID:    in.VendorID,
		}
		if err := r.Products().Update(ctx, id, changes, "product_name", "description", "brand", "vendor_id"); err != nil {
			return writeFailed("update", "product", err)
		}

		for i, d := range in.Details {
			if d.ID == 0 {
				pd := d.toModel(id, images[i])
				if err := r.Details().Create(ctx, &pd); err != nil {
					return writeFailed("create", "product detail", err)
				}
				continue
			}

			cols := []string{"size", "color", "price", "discount", "stock"}
			if images[i] != "" && images[i] != oldImages[d.ID] {
				cols = append(cols, "image")
				if old := oldImages[d.ID]; old != "" {
					replaced = append(replaced, old)
				}
			}
			if err := r.Details().Update(ctx, d.ID, d.toModel(id, images[i]), cols...); err != nil {
				return writeFailed("update", "product detail", err)
			}
		}

		if in.CategoryIDs != nil {
			if err := r.ProductQueries().ReplaceCategories(ctx, id, in.CategoryIDs); err != nil {
				return writeFailed("sync categories of", "product", err)
			}
		}
		return nil
	})
	if err != nil {
		discardUploads(ctx, u.files, uploaded)
		return resource.Product{}, err
	}

	// 差し替えた古い画像はcommit後に消す
	discardUploads(ctx, u.files, replaced)
	u.cache.Invalidate(ctx)
	return u.Show(ctx, id, 0)
}

// DELETE /products/:id
// バリエーション画像を消してから行を消す。
func (u *ProductUsecase) Destroy(ctx context.Context, id int64) error {
	p, err := find(ctx, u.products, id, "product", "Details")
	if err != nil {
		return err
	}

	for _, d := range p.Details {
		if d.Image == "" {
			continue
		}
		if err := u.files.Delete(ctx, d.Image); err != nil {
			return fmt.Errorf("delete image of detail %d: %w", d.ID, err)
		}
	}

	if err := u.queries.DeleteCascade(ctx, id); err != nil {
		return writeFailed("delete", "product", err)
	}
	u.cache.Invalidate(ctx)
	return nil
}

// 一覧の整形。お気に入りはまとめて1回で引く。
func (u *ProductUsecase) shape(ctx context.Context, ps []model.Product, userID int64) ([]resource.Product, error) {
	favorites := map[int64]int64{}
	if userID > 0 && len(ps) > 0 {
		var err error
		favorites, err = u.favorites.FavoriteIDsFor(ctx, userID, resource.ProductIDs(ps))
		if err != nil {
			return nil, fmt.Errorf("favorite ids: %w", err)
		}
	}
	return resource.NewProducts(ps, favorites), nil
}

func (u *ProductUsecase) productRules(in ProductInput, productID int64) []validator.Rule {
	rules := []validator.Rule{
		validator.Exists("vendor_id", func(ctx context.Context) (bool, error) {
			return u.vendors.Exists(ctx, in.VendorID)
		}),
	}

	for i, cid := range in.CategoryIDs {
		cid := cid
		rules = append(rules, validator.Exists(fmt.Sprintf("category_ids.%d", i), func(ctx context.Context) (bool, error) {
			return u.categories.Exists(ctx, cid)
		}))
	}

	for i, d := range in.Details {
		field := fmt.Sprintf("details.%d.image", i)
		// 既存行の更新なら画像は任意
		if productID == 0 || d.ID == 0 {
			rules = append(rules, validator.Present(field, d.Image != "" || d.Upload != nil))
		}
		rules = append(rules, imageRule(field, d.Upload))
	}
	return rules
}

// アップロードを先に保存する。images[i] は各バリエーションの画像参照（未指定は既存値 or ""）。
func (u *ProductUsecase) putVariantImages(ctx context.Context, details []ProductVariantInput) (images []string, uploaded []string, err error) {
	images = make([]string, len(details))
	for i, d := range details {
		if d.Upload == nil {
			images[i] = d.Image
			continue
		}
		ref, err := putUpload(ctx, u.files, d.Upload)
		if err != nil {
			discardUploads(ctx, u.files, uploaded)
			return nil, nil, err
		}
		images[i] = ref
		uploaded = append(uploaded, ref)
	}
	return images, uploaded, nil
}
