package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(e *echo.Echo, method string, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteError_Mapping(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
		body   string
	}{
		"http error":   {usecase.NewHTTPError(http.StatusForbidden, "forbidden"), http.StatusForbidden, `{"error":"forbidden"}`},
		"not found":    {usecase.NewHTTPError(http.StatusNotFound, "cart not found"), http.StatusNotFound, `{"error":"cart not found"}`},
		"wrapped http": {errors.Join(errors.New("ctx"), usecase.NewHTTPError(http.StatusUnauthorized, "unauthenticated")), http.StatusUnauthorized, `{"error":"unauthenticated"}`},
		"validation": {
			&validator.Error{Fields: map[string][]string{"quantity": {"The quantity field is required."}}},
			http.StatusUnprocessableEntity,
			`{"message":"The given data was invalid.","errors":{"quantity":["The quantity field is required."]}}`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, rec := newContext(echo.New(), http.MethodGet, "/")
			require.NoError(t, writeError(c, "Failed", tc.err))
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

// 500はデバッグ時だけ詳細を返す
func TestWriteError_InternalDetailOnlyInDebug(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/")
	require.NoError(t, writeError(c, "Failed to fetch carts", errors.New("db down")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch carts"}`, rec.Body.String())

	e.Debug = true
	c, rec = newContext(e, http.MethodGet, "/")
	require.NoError(t, writeError(c, "Failed to fetch carts", errors.New("db down")))
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch carts", body.Error)
	assert.Equal(t, "db down", body.Message)
}

func TestPathID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3", ""} {
		c, _ := newContext(echo.New(), http.MethodGet, "/")
		c.SetParamNames("id")
		c.SetParamValues(raw)

		_, err := pathID(c, "cart")
		he, ok := usecase.AsHTTPError(err)
		require.True(t, ok, raw)
		assert.Equal(t, http.StatusNotFound, he.Status)
		assert.Equal(t, "cart not found", he.Message)
	}

	c, _ := newContext(echo.New(), http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("12")
	id, err := pathID(c, "cart")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}
