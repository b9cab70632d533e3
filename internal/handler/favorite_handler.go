package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /favorites（更新なし）
type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

func (h *FavoriteHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User]) {
	g := e.Group("/favorites", signedIn(cfg, users)...)

	g.GET("", h.index)
	g.POST("", h.store)
	g.GET("/:id", h.show)
	g.DELETE("/:id", h.destroy)
}

func (h *FavoriteHandler) index(c echo.Context) error {
	out, err := h.uc.Index(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, "Failed to fetch favorites", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *FavoriteHandler) store(c echo.Context) error {
	var in usecase.FavoriteInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Store(c.Request().Context(), getUserIDFromContext(c), in)
	if err != nil {
		return writeError(c, "Failed to store favorite", err)
	}
	return writeData(c, http.StatusCreated, out)
}

func (h *FavoriteHandler) show(c echo.Context) error {
	id, err := pathID(c, "favorite")
	if err != nil {
		return writeError(c, "Failed to fetch favorite", err)
	}
	out, err := h.uc.Show(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return writeError(c, "Failed to fetch favorite", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *FavoriteHandler) destroy(c echo.Context) error {
	id, err := pathID(c, "favorite")
	if err != nil {
		return writeError(c, "Failed to delete favorite", err)
	}
	if err := h.uc.Destroy(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return writeError(c, "Failed to delete favorite", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Favorite deleted successfully"})
}
