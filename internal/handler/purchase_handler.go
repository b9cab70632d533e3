package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /purchases と /order-details
type PurchaseHandler struct {
	purchases *usecase.PurchaseUsecase
	orders    *usecase.OrderDetailUsecase
}

func NewPurchaseHandler(purchases *usecase.PurchaseUsecase, orders *usecase.OrderDetailUsecase) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases, orders: orders}
}

func (h *PurchaseHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User]) {
	p := e.Group("/purchases", signedIn(cfg, users)...)
	p.GET("", h.indexPurchases)
	p.POST("", h.storePurchase)
	p.GET("/:id", h.showPurchase)
	p.PUT("/:id", h.updatePurchase)
	p.DELETE("/:id", h.destroyPurchase)

	o := e.Group("/order-details", signedIn(cfg, users)...)
	o.GET("", h.indexOrders)
	o.POST("", h.storeOrder)
	o.GET("/:id", h.showOrder)
	o.PUT("/:id", h.updateOrder)
	o.DELETE("/:id", h.destroyOrder)
}

func (h *PurchaseHandler) indexPurchases(c echo.Context) error {
	out, err := h.purchases.Index(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, "Failed to fetch purchases", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *PurchaseHandler) storePurchase(c echo.Context) error {
	var in usecase.PurchaseInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.purchases.Store(c.Request().Context(), getUserIDFromContext(c), in)
	if err != nil {
		return writeError(c, "Failed to store purchase", err)
	}
	return writeData(c, http.StatusCreated, out)
}

func (h *PurchaseHandler) showPurchase(c echo.Context) error {
	id, err := pathID(c, "purchase")
	if err != nil {
		return writeError(c, "Failed to fetch purchase", err)
	}
	out, err := h.purchases.Show(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return writeError(c, "Failed to fetch purchase", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *PurchaseHandler) updatePurchase(c echo.Context) error {
	id, err := pathID(c, "purchase")
	if err != nil {
		return writeError(c, "Failed to update purchase", err)
	}
	var in usecase.PurchaseInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.purchases.Update(c.Request().Context(), getUserIDFromContext(c), id, in)
	if err != nil {
		return writeError(c, "Failed to update purchase", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *PurchaseHandler) destroyPurchase(c echo.Context) error {
	id, err := pathID(c, "purchase")
	if err != nil {
		return writeError(c, "Failed to delete purchase", err)
	}
	if err := h.purchases.Destroy(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return writeError(c, "Failed to delete purchase", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Purchase deleted successfully"})
}

func (h *PurchaseHandler) indexOrders(c echo.Context) error {
	out, err := h.orders.Index(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, "Failed to fetch order details", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *PurchaseHandler) storeOrder(c echo.Context) error {
	var in usecase.OrderDetailInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.orders.Store(c.Request().Context(), getUserIDFromContext(c), in)
	if err != nil {
		return writeError(c, "Failed to store order detail", err)
	}
	return writeData(c, http.StatusCreated, out)
}

func (h *PurchaseHandler) showOrder(c echo.Context) error {
	id, err := pathID(c, "order detail")
	if err != nil {
		return writeError(c, "Failed to fetch order detail", err)
	}
	out, err := h.orders.Show(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return writeError(c, "Failed to fetch order detail", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *PurchaseHandler) updateOrder(c echo.Context) error {
	id, err := pathID(c, "order detail")
	if err != nil {
		return writeError(c, "Failed to update order detail", err)
	}
	var in usecase.OrderDetailInput
	if err := c.Bind(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.orders.Update(c.Request().Context(), getUserIDFromContext(c), id, in)
	if err != nil {
		return writeError(c, "Failed to update order detail", err)
	}
	return writeData(c, http.StatusOK, out)
}

func (h *PurchaseHandler) destroyOrder(c echo.Context) error {
	id, err := pathID(c, "order detail")
	if err != nil {
		return writeError(c, "Failed to delete order detail", err)
	}
	if err := h.orders.Destroy(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return writeError(c, "Failed to delete order detail", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Order detail deleted successfully"})
}
