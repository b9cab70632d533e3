package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /carts のHTTP（ログイン必須）
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User]) {
	g := e.Group("/carts", signedIn(cfg, users)...)

	g.GET("", h.index)
	g.POST("", h.store)
	g.GET("/:id", h.show)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.destroy)
}

func (h *CartHandler) index(c echo.Context) error {
	out, err := h.uc.Index(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, "Failed to fetch cart items", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *CartHandler) store(c echo.Context) error {
	var in usecase.CartInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Store(c.Request().Context(), getUserIDFromContext(c), in)
	if err != nil {
		return writeError(c, "Failed to store cart item", err)
	}
	return writeData(c, http.StatusCreated, out)
}

func (h *CartHandler) show(c echo.Context) error {
	id, err := pathID(c, "cart")
	if err != nil {
		return writeError(c, "Failed to fetch cart item", err)
	}

	out, err := h.uc.Show(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return writeError(c, "Failed to fetch cart item", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *CartHandler) update(c echo.Context) error {
	id, err := pathID(c, "cart")
	if err != nil {
		return writeError(c, "Failed to update cart item", err)
	}
	var in usecase.CartInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Update(c.Request().Context(), getUserIDFromContext(c), id, in)
	if err != nil {
		return writeError(c, "Failed to update cart item", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *CartHandler) destroy(c echo.Context) error {
	id, err := pathID(c, "cart")
	if err != nil {
		return writeError(c, "Failed to delete cart item", err)
	}

	if err := h.uc.Destroy(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return writeError(c, "Failed to delete cart item", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Cart item deleted successfully"})
}
