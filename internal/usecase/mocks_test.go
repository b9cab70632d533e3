package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type recordsMock[E any] struct{ mock.Mock }

func (m *recordsMock[E]) FetchAll(ctx context.Context, relations ...string) ([]E, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]E)
	return items, args.Error(1)
}

func (m *recordsMock[E]) FetchAllBy(ctx context.Context, column string, value any, relations ...string) ([]E, error) {
	args := m.Called(ctx, column, value)
	items, _ := args.Get(0).([]E)
	return items, args.Error(1)
}

func (m *recordsMock[E]) Find(ctx context.Context, id int64, relations ...string) (E, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(E)
	return e, args.Error(1)
}

func (m *recordsMock[E]) Create(ctx context.Context, e *E) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *recordsMock[E]) Update(ctx context.Context, id int64, changes E, columns ...string) error {
	args := m.Called(ctx, id, changes, columns)
	return args.Error(0)
}

func (m *recordsMock[E]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *recordsMock[E]) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *recordsMock[E]) Taken(ctx context.Context, column string, value any, excludeID int64) (bool, error) {
	args := m.Called(ctx, column, value, excludeID)
	return args.Bool(0), args.Error(1)
}

type productQueriesMock struct{ mock.Mock }

func (m *productQueriesMock) List(ctx context.Context, f repo.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *productQueriesMock) Paginate(ctx context.Context, page int, perPage int) ([]model.Product, int64, error) {
	args := m.Called(ctx, page, perPage)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *productQueriesMock) Related(ctx context.Context, p model.Product, limit int) ([]model.Product, error) {
	args := m.Called(ctx, p, limit)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *productQueriesMock) ReplaceCategories(ctx context.Context, productID int64, categoryIDs []int64) error {
	args := m.Called(ctx, productID, categoryIDs)
	return args.Error(0)
}

func (m *productQueriesMock) DeleteCascade(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type favoriteRepoMock struct{ mock.Mock }

func (m *favoriteRepoMock) FavoriteIDsFor(ctx context.Context, userID int64, productIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, userID, productIDs)
	ids, _ := args.Get(0).(map[int64]int64)
	return ids, args.Error(1)
}

type inboxMock struct{ mock.Mock }

func (m *inboxMock) ListVisible(ctx context.Context, userID int64) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Notification)
	return items, args.Error(1)
}

func (m *inboxMock) CreateAndDistribute(ctx context.Context, n *model.Notification, actorUserID int64) error {
	args := m.Called(ctx, n, actorUserID)
	return args.Error(0)
}

func (m *inboxMock) IsAttached(ctx context.Context, userID int64, notificationID int64) (bool, error) {
	args := m.Called(ctx, userID, notificationID)
	return args.Bool(0), args.Error(1)
}

func (m *inboxMock) Detach(ctx context.Context, userID int64, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *inboxMock) DetachAll(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type pageCacheMock struct{ mock.Mock }

func (m *pageCacheMock) Get(ctx context.Context, page int) (repo.CachedPage, bool) {
	args := m.Called(ctx, page)
	return args.Get(0).(repo.CachedPage), args.Bool(1)
}

func (m *pageCacheMock) Set(ctx context.Context, page int, version int64, products []model.Product, total int64) {
	m.Called(ctx, page, version, products, total)
}

func (m *pageCacheMock) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

type fileStoreMock struct{ mock.Mock }

func (m *fileStoreMock) Put(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename)
	return args.String(0), args.Error(1)
}

func (m *fileStoreMock) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// Txは同じモックをそのまま渡す
type txReposFake struct {
	products *recordsMock[model.Product]
	queries  *productQueriesMock
	details  *recordsMock[model.ProductDetail]
}

func (f txReposFake) Products() repo.Records[model.Product]      { return f.products }
func (f txReposFake) ProductQueries() repo.ProductRepository     { return f.queries }
func (f txReposFake) Details() repo.Records[model.ProductDetail] { return f.details }

type txManagerFake struct {
	repos txReposFake
	calls int
}

func (m *txManagerFake) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.calls++
	return fn(m.repos)
}

// =====================
// Helpers
// =====================

func pngUpload(name string) *usecase.Upload {
	return &usecase.Upload{
		Filename: name,
		Size:     3,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("png")), nil
		},
	}
}

func ptr[T any](v T) *T { return &v }

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.Truef(t, ok, "want HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
}

func assertInvalid(t *testing.T, err error, fields ...string) {
	t.Helper()
	ve, ok := validator.AsError(err)
	require.Truef(t, ok, "want validation error, got %v", err)
	for _, f := range fields {
		assert.Contains(t, ve.Fields, f)
	}
}
