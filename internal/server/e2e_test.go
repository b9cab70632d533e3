package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	"storefront/internal/infra/filestore"
	"storefront/internal/middleware"
	"storefront/internal/server"
	"storefront/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const e2eSecret = "e2e-secret"

// 実DB + httptest.Server でAPI全体を通す（TEST_DATABASE_URL 必須）
type testClient struct {
	t       *testing.T
	baseURL string
	http    *http.Client
}

type testUsers struct {
	admin int64
	alice int64
	bob   int64
}

func newTestServer(t *testing.T) (*testClient, testUsers, string) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	uploadDir := t.TempDir()
	cfg := config.Config{
		DatabaseURL:     dsn,
		JWTSecret:       e2eSecret,
		GoEnv:           "prod",
		LogLevel:        "error",
		FEURL:           "*",
		UploadDir:       uploadDir,
		UploadURLPrefix: "/uploads",
		BodyLimit:       "10M",
	}

	gdb, err := db.Connect(cfg)
	require.NoError(t, err)
	m := gdb.Migrator()
	for _, table := range []string{
		"notification_user", "notifications", "product_comments", "order_details", "purchases",
		"favorites", "carts", "product_categories", "product_details", "products",
		"categories", "vendors", "users",
	} {
		require.NoError(t, m.DropTable(table))
	}
	require.NoError(t, db.Migrate(gdb))

	// ユーザーは外部で作られる前提なので直接入れる
	var u testUsers
	for _, row := range []struct {
		id    *int64
		email string
		role  model.Role
	}{
		{&u.admin, "admin@example.com", model.RoleAdmin},
		{&u.alice, "alice@example.com", model.RoleUser},
		{&u.bob, "bob@example.com", model.RoleUser},
	} {
		user := model.User{Name: row.email, Email: row.email, PasswordHash: "x", Role: row.role}
		require.NoError(t, gdb.Create(&user).Error)
		*row.id = user.ID
	}

	files, err := filestore.NewLocal(cfg.UploadDir, cfg.UploadURLPrefix)
	require.NoError(t, err)

	v := validator.New()
	users, routes := server.Wire(gdb, cache.NopProductPageCache{}, files, v)
	e := server.New(cfg)
	server.RegisterRoutes(e, cfg, users, routes...)

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)

	return &testClient{t: t, baseURL: ts.URL, http: &http.Client{Timeout: 10 * time.Second}}, u, uploadDir
}

func (c *testClient) token(userID int64, role model.Role) string {
	tok, err := middleware.IssueToken(e2eSecret, userID, string(role), time.Hour)
	require.NoError(c.t, err)
	return tok
}

func (c *testClient) do(method string, path string, token string, contentType string, body io.Reader) (int, []byte) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.baseURL+path, body)
	require.NoError(c.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	return res.StatusCode, b
}

func (c *testClient) json(method string, path string, token string, body any) (int, []byte) {
	c.t.Helper()
	if body == nil {
		return c.do(method, path, token, "", nil)
	}
	raw, err := json.Marshal(body)
	require.NoError(c.t, err)
	return c.do(method, path, token, "application/json", bytes.NewReader(raw))
}

// {"data": {...}} の data を取り出す
func dataOf[T any](t *testing.T, body []byte) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env.Data
}

type idOnly struct {
	ID int64 `json:"id"`
}

func TestE2E_CatalogCartFavoriteFlow(t *testing.T) {
	c, u, uploadDir := newTestServer(t)
	admin := c.token(u.admin, model.RoleAdmin)
	alice := c.token(u.alice, model.RoleUser)
	bob := c.token(u.bob, model.RoleUser)

	status, body := c.json(http.MethodPost, "/categories", admin, map[string]any{"category_name": "Shoes"})
	require.Equal(t, http.StatusCreated, status, string(body))
	category := dataOf[idOnly](t, body)

	// 画像付きの業者登録（multipart）
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Acme"))
	require.NoError(t, w.WriteField("email", "acme@example.com"))
	require.NoError(t, w.WriteField("password", "secret123"))
	fw, err := w.CreateFormFile("image", "logo.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	status, body = c.do(http.MethodPost, "/vendors", admin, w.FormDataContentType(), &buf)
	require.Equal(t, http.StatusCreated, status, string(body))
	vendor := dataOf[struct {
		ID    int64  `json:"id"`
		Image string `json:"image"`
	}](t, body)
	require.True(t, strings.HasPrefix(vendor.Image, "/uploads/"))
	_, err = os.Stat(filepath.Join(uploadDir, filepath.Base(vendor.Image)))
	require.NoError(t, err)

	status, _ = c.do(http.MethodGet, vendor.Image, "", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = c.json(http.MethodPost, "/products", admin, map[string]any{
		"product_name": "Runner",
		"brand":        "Acme",
		"vendor_id":    vendor.ID,
		"category_ids": []int64{category.ID},
		"details": []map[string]any{
			{"size": "M", "color": "red", "image": "/uploads/runner.png", "price": "80.00", "discount": "25", "stock": 5},
		},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	product := dataOf[struct {
		ID         int64   `json:"id"`
		FinalPrice float64 `json:"final_price"`
		Categories string  `json:"categories"`
		VendorName string  `json:"vendor_name"`
	}](t, body)
	assert.Equal(t, 60.0, product.FinalPrice)
	assert.Equal(t, "Shoes", product.Categories)
	assert.Equal(t, "Acme", product.VendorName)

	status, body = c.json(http.MethodGet, "/product-details", "", nil)
	require.Equal(t, http.StatusOK, status)
	details := dataOf[[]idOnly](t, body)
	require.Len(t, details, 1)
	detailID := details[0].ID

	// 一般ユーザーは商品を作れない
	status, _ = c.json(http.MethodPost, "/products", alice, map[string]any{"product_name": "x"})
	assert.Equal(t, http.StatusForbidden, status)

	// カート
	status, body = c.json(http.MethodPost, "/carts", alice, map[string]any{"quantity": 2, "product_id": product.ID, "product_detail_id": detailID})
	require.Equal(t, http.StatusCreated, status, string(body))
	cart := dataOf[struct {
		ID    int64   `json:"id"`
		Price float64 `json:"price"`
	}](t, body)
	assert.Equal(t, 60.0, cart.Price)

	status, _ = c.json(http.MethodPut, "/carts/"+itoa(cart.ID), bob, map[string]any{"quantity": 1, "product_id": product.ID, "product_detail_id": detailID})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = c.json(http.MethodGet, "/carts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = c.json(http.MethodGet, "/carts", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, dataOf[[]idOnly](t, body))

	// お気に入りは一覧の is_favorite に反映される
	status, body = c.json(http.MethodPost, "/favorites", alice, map[string]any{"product_id": product.ID, "product_detail_id": detailID})
	require.Equal(t, http.StatusCreated, status, string(body))
	fav := dataOf[idOnly](t, body)

	status, body = c.json(http.MethodGet, "/products", alice, nil)
	require.Equal(t, http.StatusOK, status)
	listed := dataOf[[]struct {
		IsFavorite bool   `json:"is_favorite"`
		FavoriteID *int64 `json:"favorite_id"`
	}](t, body)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].IsFavorite)
	assert.Equal(t, fav.ID, *listed[0].FavoriteID)

	status, body = c.json(http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, dataOf[[]struct {
		IsFavorite bool `json:"is_favorite"`
	}](t, body)[0].IsFavorite)

	status, body = c.json(http.MethodGet, "/products/limited?page=1", "", nil)
	require.Equal(t, http.StatusOK, status)
	var page struct {
		Meta struct {
			Total       int64   `json:"total"`
			PerPage     int     `json:"per_page"`
			NextPageURL *string `json:"next_page_url"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, int64(1), page.Meta.Total)
	assert.Equal(t, 30, page.Meta.PerPage)
	assert.Nil(t, page.Meta.NextPageURL)

	// 商品削除でバリエーションも消える
	status, _ = c.json(http.MethodDelete, "/products/"+itoa(product.ID), admin, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = c.json(http.MethodGet, "/product-details/"+itoa(detailID), "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestE2E_NotificationsFanOut(t *testing.T) {
	c, u, _ := newTestServer(t)
	alice := c.token(u.alice, model.RoleUser)
	bob := c.token(u.bob, model.RoleUser)

	status, body := c.json(http.MethodPost, "/notifications", alice, map[string]any{"title": "Sale", "message": "50% off", "type": "promo", "is_global": true})
	require.Equal(t, http.StatusCreated, status, string(body))
	global := dataOf[idOnly](t, body)

	status, body = c.json(http.MethodPost, "/notifications", alice, map[string]any{"title": "Note", "message": "just me", "type": "info", "is_global": false})
	require.Equal(t, http.StatusCreated, status, string(body))
	private := dataOf[idOnly](t, body)

	status, body = c.json(http.MethodGet, "/notifications", bob, nil)
	require.Equal(t, http.StatusOK, status)
	seen := dataOf[[]idOnly](t, body)
	require.Len(t, seen, 1)
	assert.Equal(t, global.ID, seen[0].ID)

	status, _ = c.json(http.MethodGet, "/notifications/"+itoa(private.ID), bob, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.json(http.MethodDelete, "/notifications/"+itoa(global.ID), bob, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.json(http.MethodDelete, "/notifications/"+itoa(private.ID), alice, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = c.json(http.MethodDelete, "/notifications", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"All notifications cleared successfully"}`, string(body))
}

func TestE2E_PurchaseOwnership(t *testing.T) {
	c, u, _ := newTestServer(t)
	alice := c.token(u.alice, model.RoleUser)
	bob := c.token(u.bob, model.RoleUser)

	order := map[string]any{"total_amount": "120.50", "order_status": 1, "shipping_address": "1 Main St", "shipping_cost": "5", "user_id": u.alice}
	status, _ := c.json(http.MethodPost, "/order-details", bob, order)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := c.json(http.MethodPost, "/order-details", alice, order)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := dataOf[idOnly](t, body)

	status, _ = c.json(http.MethodGet, "/order-details/"+itoa(created.ID), bob, nil)
	assert.Equal(t, http.StatusForbidden, status)

	order["order_status"] = 300
	status, _ = c.json(http.MethodPut, "/order-details/"+itoa(created.ID), alice, order)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
