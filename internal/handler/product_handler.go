package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/resource"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products（参照は公開、書き込みは管理者）
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type pageMeta struct {
	CurrentPage int     `json:"current_page"`
	LastPage    int     `json:"last_page"`
	PerPage     int     `json:"per_page"`
	Total       int64   `json:"total"`
	NextPageURL *string `json:"next_page_url"`
	PrevPageURL *string `json:"prev_page_url"`
}

type productPageResponse struct {
	Data []resource.Product `json:"data"`
	Meta pageMeta           `json:"meta"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User]) {
	optional := middleware.OptionalAuthJWT(cfg)
	admin := adminOnly(cfg, users)

	e.GET("/products", h.index, optional)
	e.GET("/products/limited", h.limited, optional)
	e.GET("/products/:id", h.show, optional)
	e.GET("/products/:id/related", h.related, optional)

	e.POST("/products", h.store, admin...)
	e.PUT("/products/:id", h.update, admin...)
	e.DELETE("/products/:id", h.destroy, admin...)
}

// ?search=&category_id=&brand=
func (h *ProductHandler) index(c echo.Context) error {
	f := repository.ProductFilter{
		Search: c.QueryParam("search"),
		Brand:  c.QueryParam("brand"),
	}
	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category_id"})
		}
		f.CategoryID = id
	}

	out, err := h.uc.Index(c.Request().Context(), f, getUserIDFromContext(c))
	if err != nil {
		return writeError(c, "Failed to fetch products", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *ProductHandler) limited(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	out, err := h.uc.Limited(c.Request().Context(), page, getUserIDFromContext(c))
	if err != nil {
		return writeError(c, "Failed to fetch products", err)
	}

	meta := pageMeta{
		CurrentPage: out.Page,
		LastPage:    out.LastPage,
		PerPage:     out.PerPage,
		Total:       out.Total,
	}
	if out.Page < out.LastPage {
		u := pageURL(c, out.Page+1)
		meta.NextPageURL = &u
	}
	if out.Page > 1 {
		u := pageURL(c, out.Page-1)
		meta.PrevPageURL = &u
	}
	return c.JSON(http.StatusOK, productPageResponse{Data: out.Items, Meta: meta})
}

func pageURL(c echo.Context, page int) string {
	return fmt.Sprintf("%s://%s%s?page=%d", c.Scheme(), c.Request().Host, c.Request().URL.Path, page)
}

func (h *ProductHandler) show(c echo.Context) error {
	id, err := pathID(c, "product")
	if err != nil {
		return writeError(c, "Failed to fetch product", err)
	}

	out, err := h.uc.Show(c.Request().Context(), id, getUserIDFromContext(c))
	if err != nil {
		return writeError(c, "Failed to fetch product", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *ProductHandler) related(c echo.Context) error {
	id, err := pathID(c, "product")
	if err != nil {
		return writeError(c, "Failed to fetch related products", err)
	}

	out, err := h.uc.Related(c.Request().Context(), id, getUserIDFromContext(c))
	if err != nil {
		return writeError(c, "Failed to fetch related products", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *ProductHandler) store(c echo.Context) error {
	in, err := bindProduct(c)
	if err != nil {
		return bindFailed(c, "Failed to store product", err)
	}

	out, err := h.uc.Store(c.Request().Context(), in)
	if err != nil {
		return writeError(c, "Failed to store product", err)
	}
	return writeData(c, http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := pathID(c, "product")
	if err != nil {
		return writeError(c, "Failed to update product", err)
	}
	in, err := bindProduct(c)
	if err != nil {
		return bindFailed(c, "Failed to update product", err)
	}

	out, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, "Failed to update product", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *ProductHandler) destroy(c echo.Context) error {
	id, err := pathID(c, "product")
	if err != nil {
		return writeError(c, "Failed to delete product", err)
	}

	if err := h.uc.Destroy(c.Request().Context(), id); err != nil {
		return writeError(c, "Failed to delete product", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product deleted successfully"})
}

// JSON、または multipart（details はJSON配列、画像は details[i][image]）
func bindProduct(c echo.Context) (usecase.ProductInput, error) {
	var in usecase.ProductInput
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
	in.ProductName = r.str("product_name")
	in.Description = r.optStr("description")
	in.Brand = r.optStr("brand")
	in.VendorID = r.int64("vendor_id")
	in.CategoryIDs = r.int64s("category_ids")
	r.jsonValue("details", &in.Details)

	for i := range in.Details {
		in.Details[i].Upload = r.file(fmt.Sprintf("details[%d][image]", i))
	}
	return in, r.err()
}
