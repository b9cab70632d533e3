package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /notifications（ログイン必須）
type NotificationHandler struct {
	uc *usecase.NotificationUsecase
}

func NewNotificationHandler(uc *usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User]) {
	g := e.Group("/notifications", signedIn(cfg, users)...)

	g.GET("", h.index)
	g.POST("", h.store)
	g.DELETE("", h.clearAll)
	g.GET("/:id", h.show)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.destroy)
}

func (h *NotificationHandler) index(c echo.Context) error {
	out, err := h.uc.Index(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, "Failed to fetch notifications", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *NotificationHandler) store(c echo.Context) error {
	var in usecase.NotificationInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Store(c.Request().Context(), getUserIDFromContext(c), in)
	if err != nil {
		return writeError(c, "Failed to store notification", err)
	}
	return writeData(c, http.StatusCreated, out)
}

func (h *NotificationHandler) show(c echo.Context) error {
	id, err := pathID(c, "notification")
	if err != nil {
		return writeError(c, "Failed to fetch notification", err)
	}
	out, err := h.uc.Show(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return writeError(c, "Failed to fetch notification", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *NotificationHandler) update(c echo.Context) error {
	id, err := pathID(c, "notification")
	if err != nil {
		return writeError(c, "Failed to update notification", err)
	}
	var in usecase.NotificationPatch
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Request().Context(), getUserIDFromContext(c), id, in)
	if err != nil {
		return writeError(c, "Failed to update notification", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *NotificationHandler) destroy(c echo.Context) error {
	id, err := pathID(c, "notification")
	if err != nil {
		return writeError(c, "Failed to delete notification", err)
	}
	if err := h.uc.Destroy(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return writeError(c, "Failed to delete notification", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Notification deleted successfully"})
}

// 自分宛ての通知をすべて外す
func (h *NotificationHandler) clearAll(c echo.Context) error {
	if err := h.uc.ClearAll(c.Request().Context(), getUserIDFromContext(c)); err != nil {
		return writeError(c, "Failed to clear notifications", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "All notifications cleared successfully"})
}
