package middleware

import (
	"net/http"
	"slices"

	"storefront/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AuthJWTの後ろで使う。roleが無ければ401、許可外なら403。
func RoleGuard(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := Role(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthenticated"))
			}
			if !slices.Contains(allowed, role) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}

// 管理者だけ
func AdminRoleGuard() echo.MiddlewareFunc {
	return RoleGuard(model.RoleAdmin)
}

func Role(c echo.Context) (model.Role, bool) {
	s, ok := c.Get(CtxUserRoleKey).(string)
	if !ok || s == "" {
		return "", false
	}
	return model.Role(s), true
}
