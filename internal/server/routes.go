package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

// 各ハンドラーが自分のルートを登録する
type Routes interface {
	RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User])
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.Records[model.User], handlers ...Routes) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, h := range handlers {
		h.RegisterRoutes(e, cfg, users)
	}
}
