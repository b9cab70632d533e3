package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // string
)

var errNoToken = errors.New("no bearer token")

// bearerAuth用のJWT検証ミドルウェア。トークンは外部の認証サービスが発行する。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, role, err := identify(c, cfg.JWTSecret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthenticated"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUserRoleKey, role)
			return next(c)
		}
	}
}

// 公開APIで「ログインしていれば」使う（お気に入りフラグなど）。
// ヘッダが無ければ匿名で通す。壊れたトークンは401。
func OptionalAuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, role, err := identify(c, cfg.JWTSecret)
			if errors.Is(err, errNoToken) {
				return next(c)
			}
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthenticated"))
			}

			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUserRoleKey, role)
			return next(c)
		}
	}
}

// contextのuser_id（未ログインは0）
func UserID(c echo.Context) int64 {
	id, _ := c.Get(CtxUserIDKey).(int64)
	return id
}

func identify(c echo.Context, secret string) (int64, string, error) {
	//Authorizationヘッダを取得
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return 0, "", errNoToken
	}

	//Bearer形式か確認してtokenを抜く
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, "", errors.New("malformed authorization header")
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return 0, "", errors.New("empty token")
	}

	//JWTをパースして検証する
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}

	userID, err := parseUserID(claims["sub"])
	if err != nil || userID <= 0 {
		return 0, "", errors.New("invalid sub")
	}

	//roleを取り出す（USER/ADMIN）
	role, err := parseString(claims["role"])
	if err != nil || role == "" {
		return 0, "", errors.New("invalid role")
	}
	return userID, role, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// user_idをint64に変換する
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}
