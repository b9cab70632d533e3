package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// =====================
// /product-details
// =====================

type ProductDetailHandler struct {
	uc *usecase.ProductDetailUsecase
}

func NewProductDetailHandler(uc *usecase.ProductDetailUsecase) *ProductDetailHandler {
	return &ProductDetailHandler{uc: uc}
}

func (h *ProductDetailHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User]) {
	admin := adminOnly(cfg, users)

	e.GET("/product-details", h.index)
	e.GET("/product-details/:id", h.show)
	e.POST("/product-details", h.store, admin...)
	e.PUT("/product-details/:id", h.update, admin...)
	e.DELETE("/product-details/:id", h.destroy, admin...)
}

func (h *ProductDetailHandler) index(c echo.Context) error {
	out, err := h.uc.Index(c.Request().Context())
	if err != nil {
		return writeError(c, "Failed to fetch product details", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *ProductDetailHandler) show(c echo.Context) error {
	id, err := pathID(c, "product detail")
	if err != nil {
		return writeError(c, "Failed to fetch product detail", err)
	}
	out, err := h.uc.Show(c.Request().Context(), id)
	if err != nil {
		return writeError(c, "Failed to fetch product detail", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *ProductDetailHandler) store(c echo.Context) error {
	in, err := bindProductDetail(c)
	if err != nil {
		return bindFailed(c, "Failed to store product detail", err)
	}
	out, err := h.uc.Store(c.Request().Context(), in)
	if err != nil {
		return writeError(c, "Failed to store product detail", err)
	}
	return writeData(c, http.StatusCreated, out)
}

func (h *ProductDetailHandler) update(c echo.Context) error {
	id, err := pathID(c, "product detail")
	if err != nil {
		return writeError(c, "Failed to update product detail", err)
	}
	in, err := bindProductDetail(c)
	if err != nil {
		return bindFailed(c, "Failed to update product detail", err)
	}
	out, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, "Failed to update product detail", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *ProductDetailHandler) destroy(c echo.Context) error {
	id, err := pathID(c, "product detail")
	if err != nil {
		return writeError(c, "Failed to delete product detail", err)
	}
	if err := h.uc.Destroy(c.Request().Context(), id); err != nil {
		return writeError(c, "Failed to delete product detail", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product detail deleted successfully"})
}

// 画像は multipart の image
func bindProductDetail(c echo.Context) (usecase.ProductDetailInput, error) {
	var in usecase.ProductDetailInput
	if !isMultipart(c) {
		if err := c.Bind(&in); err != nil {
			return in, errBadBody
		}
		return in, nil
	}

	r, err := newFormReader(c)
	if err != nil {
		return in, errBadBody
	}
	in.ProductID = r.int64("product_id")
	in.Size = r.str("size")
	in.Color = r.str("color")
	in.Price = r.optDecimal("price")
	in.Discount = r.optDecimal("discount")
	in.Stock = r.optInt("stock")
	in.Upload = r.file("image")
	return in, r.err()
}

// =====================
// /categories
// =====================

type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User]) {
	admin := adminOnly(cfg, users)

	e.GET("/categories", h.index)
	e.GET("/categories/:id", h.show)
	e.POST("/categories", h.store, admin...)
	e.PUT("/categories/:id", h.update, admin...)
	e.DELETE("/categories/:id", h.destroy, admin...)
}

func (h *CategoryHandler) index(c echo.Context) error {
	out, err := h.uc.Index(c.Request().Context())
	if err != nil {
		return writeError(c, "Failed to fetch categories", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *CategoryHandler) show(c echo.Context) error {
	id, err := pathID(c, "category")
	if err != nil {
		return writeError(c, "Failed to fetch category", err)
	}
	out, err := h.uc.Show(c.Request().Context(), id)
	if err != nil {
		return writeError(c, "Failed to fetch category", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *CategoryHandler) store(c echo.Context) error {
	var in usecase.CategoryInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Store(c.Request().Context(), in)
	if err != nil {
		return writeError(c, "Failed to store category", err)
	}
	return writeData(c, http.StatusCreated, out)
}

func (h *CategoryHandler) update(c echo.Context) error {
	id, err := pathID(c, "category")
	if err != nil {
		return writeError(c, "Failed to update category", err)
	}
	var in usecase.CategoryInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, "Failed to update category", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *CategoryHandler) destroy(c echo.Context) error {
	id, err := pathID(c, "category")
	if err != nil {
		return writeError(c, "Failed to delete category", err)
	}
	if err := h.uc.Destroy(c.Request().Context(), id); err != nil {
		return writeError(c, "Failed to delete category", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Category deleted successfully"})
}

// =====================
// /vendors
// =====================

type VendorHandler struct {
	uc *usecase.VendorUsecase
}

func NewVendorHandler(uc *usecase.VendorUsecase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

func (h *VendorHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User]) {
	admin := adminOnly(cfg, users)

	e.GET("/vendors", h.index)
	e.GET("/vendors/:id", h.show)
	e.POST("/vendors", h.store, admin...)
	e.PUT("/vendors/:id", h.update, admin...)
	e.DELETE("/vendors/:id", h.destroy, admin...)
}

func (h *VendorHandler) index(c echo.Context) error {
	out, err := h.uc.Index(c.Request().Context())
	if err != nil {
		return writeError(c, "Failed to fetch vendors", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *VendorHandler) show(c echo.Context) error {
	id, err := pathID(c, "vendor")
	if err != nil {
		return writeError(c, "Failed to fetch vendor", err)
	}
	out, err := h.uc.Show(c.Request().Context(), id)
	if err != nil {
		return writeError(c, "Failed to fetch vendor", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *VendorHandler) store(c echo.Context) error {
	in, err := bindVendor(c)
	if err != nil {
		return bindFailed(c, "Failed to store vendor", err)
	}
	out, err := h.uc.Store(c.Request().Context(), in)
	if err != nil {
		return writeError(c, "Failed to store vendor", err)
	}
	return writeData(c, http.StatusCreated, out)
}

func (h *VendorHandler) update(c echo.Context) error {
	id, err := pathID(c, "vendor")
	if err != nil {
		return writeError(c, "Failed to update vendor", err)
	}
	in, err := bindVendor(c)
	if err != nil {
		return bindFailed(c, "Failed to update vendor", err)
	}
	out, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, "Failed to update vendor", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *VendorHandler) destroy(c echo.Context) error {
	id, err := pathID(c, "vendor")
	if err != nil {
		return writeError(c, "Failed to delete vendor", err)
	}
	if err := h.uc.Destroy(c.Request().Context(), id); err != nil {
		return writeError(c, "Failed to delete vendor", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Vendor deleted successfully"})
}

func bindVendor(c echo.Context) (usecase.VendorInput, error) {
	var in usecase.VendorInput
	if !isMultipart(c) {
		if err := c.Bind(&in); err != nil {
			return in, errBadBody
		}
		return in, nil
	}

	r, err := newFormReader(c)
	if err != nil {
		return in, errBadBody
	}
	in.Name = r.str("name")
	in.Email = r.str("email")
	// 空のパスワードは「変更なし」
	if p := r.optStr("password"); p != nil && *p != "" {
		in.Password = p
	}
	in.Image = r.file("image")
	return in, r.err()
}
