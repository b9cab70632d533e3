package middleware

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

// JWTのsubがusersに存在するか確認。退会済みユーザーのトークンは401。
func KnownUserGuard(users repository.Records[model.User]) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID := UserID(c)
			if userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthenticated"))
			}

			ok, err := users.Exists(c.Request().Context(), userID)
			if err != nil {
				c.Logger().Errorf("known user check: %v", err)
				return c.JSON(http.StatusInternalServerError, errorJSON("failed to check user"))
			}
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthenticated"))
			}

			return next(c)
		}
	}
}
