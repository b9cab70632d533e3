package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /comments（参照は公開）
type CommentHandler struct {
	uc *usecase.CommentUsecase
}

func NewCommentHandler(uc *usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

func (h *CommentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User]) {
	auth := signedIn(cfg, users)

	e.GET("/comments", h.index)
	e.GET("/comments/:id", h.show)
	e.POST("/comments", h.store, auth...)
	e.PUT("/comments/:id", h.update, auth...)
	e.DELETE("/comments/:id", h.destroy, auth...)
}

func (h *CommentHandler) index(c echo.Context) error {
	out, err := h.uc.Index(c.Request().Context())
	if err != nil {
		return writeError(c, "Failed to fetch comments", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *CommentHandler) show(c echo.Context) error {
	id, err := pathID(c, "comment")
	if err != nil {
		return writeError(c, "Failed to fetch comment", err)
	}
	out, err := h.uc.Show(c.Request().Context(), id)
	if err != nil {
		return writeError(c, "Failed to fetch comment", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *CommentHandler) store(c echo.Context) error {
	var in usecase.CommentInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Store(c.Request().Context(), getUserIDFromContext(c), in)
	if err != nil {
		return writeError(c, "Failed to store comment", err)
	}
	return writeData(c, http.StatusCreated, out)
}

func (h *CommentHandler) update(c echo.Context) error {
	id, err := pathID(c, "comment")
	if err != nil {
		return writeError(c, "Failed to update comment", err)
	}
	var in usecase.CommentInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Request().Context(), getUserIDFromContext(c), id, in)
	if err != nil {
		return writeError(c, "Failed to update comment", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *CommentHandler) destroy(c echo.Context) error {
	id, err := pathID(c, "comment")
	if err != nil {
		return writeError(c, "Failed to delete comment", err)
	}
	if err := h.uc.Destroy(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return writeError(c, "Failed to delete comment", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Comment deleted successfully"})
}
