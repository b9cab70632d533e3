package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	repo "storefront/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 認証必須のユースケースの入口
func requireUser(userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return nil
}

// 所有者チェック
func requireOwner(ownerID, userID int64) error {
	if ownerID != userID {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

func notFound(what string) error {
	return NewHTTPError(http.StatusNotFound, what+" not found")
}

// 1件取得。無ければ404。
func find[E any](ctx context.Context, r repo.Records[E], id int64, what string, relations ...string) (E, error) {
	e, err := r.Find(ctx, id, relations...)
	if errors.Is(err, repo.ErrNotFound) {
		var zero E
		return zero, notFound(what)
	}
	if err != nil {
		var zero E
		return zero, fmt.Errorf("find %s %d: %w", what, id, err)
	}
	return e, nil
}

// 書き込み系のリポジトリエラーをHTTPの意味に寄せる
func writeFailed(op string, what string, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return notFound(what)
	case errors.Is(err, repo.ErrConflict):
		return NewHTTPError(http.StatusUnprocessableEntity, what+" conflicts with an existing record")
	case errors.Is(err, repo.ErrInvalidReference):
		return NewHTTPError(http.StatusUnprocessableEntity, what+" references a missing record")
	default:
		return fmt.Errorf("%s %s: %w", op, what, err)
	}
}

// 削除系（見つからなければ404）
func deleteRecord[E any](ctx context.Context, r repo.Records[E], id int64, what string) error {
	if err := r.Delete(ctx, id); err != nil {
		return writeFailed("delete", what, err)
	}
	return nil
}
