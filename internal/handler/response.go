package handler

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse は { message: string }
type SuccessResponse struct {
	Message string `json:"message"`
}

// 422
type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// 単体・一覧とも {"data": ...}
type DataResponse[T any] struct {
	Data T `json:"data"`
}

func writeData[T any](c echo.Context, status int, v T) error {
	return c.JSON(status, DataResponse[T]{Data: v})
}

// usecaseのエラーをHTTPへ。actionは500のときのメッセージ。
func writeError(c echo.Context, action string, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	if ve, ok := validator.AsError(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
			Message: "The given data was invalid.",
			Errors:  ve.Fields,
		})
	}

	//500
	c.Logger().Errorf("%s: %v", action, err)
	resp := ErrorResponse{Error: action}
	if c.Echo().Debug {
		resp.Message = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, resp)
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

// 数値でないIDは存在しない行として扱う
func pathID(c echo.Context, what string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.NewHTTPError(http.StatusNotFound, what+" not found")
	}
	return id, nil
}

func getUserIDFromContext(c echo.Context) int64 {
	return middleware.UserID(c)
}

// ログイン必須のルート
func signedIn(cfg config.Config, users repository.Records[model.User]) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.KnownUserGuard(users),
	}
}

// 管理者のみ
func adminOnly(cfg config.Config, users repository.Records[model.User]) []echo.MiddlewareFunc {
	return append(signedIn(cfg, users), middleware.AdminRoleGuard())
}

var errBadBody = errors.New("invalid body")

// バインド失敗：壊れたボディは400、型違いのフォーム項目は422
func bindFailed(c echo.Context, action string, err error) error {
	if errors.Is(err, errBadBody) {
		return invalidBody(c)
	}
	return writeError(c, action, err)
}
