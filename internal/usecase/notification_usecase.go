package usecase

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/resource"
	"storefront/internal/validator"
)

// 通知。グローバル通知は作成時点の全ユーザーに配信する。
type NotificationUsecase struct {
	notifications repo.Records[model.Notification]
	inbox         repo.NotificationRepository
	v             *validator.Validator
}

func NewNotificationUsecase(notifications repo.Records[model.Notification], inbox repo.NotificationRepository, v *validator.Validator) *NotificationUsecase {
	return &NotificationUsecase{notifications: notifications, inbox: inbox, v: v}
}

type NotificationInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	Message  string `json:"message" validate:"required"`
	Type     string `json:"type" validate:"required,max=50"`
	IsGlobal *bool  `json:"is_global" validate:"required"`
}

// 送られた項目だけ更新
type NotificationPatch struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	Message  *string `json:"message" validate:"omitempty,min=1"`
	Type     *string `json:"type" validate:"omitempty,min=1,max=50"`
	IsGlobal *bool   `json:"is_global"`
}

func (u *NotificationUsecase) Index(ctx context.Context, userID int64) ([]resource.Notification, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	ns, err := u.inbox.ListVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return resource.NewNotifications(ns), nil
}

func (u *NotificationUsecase) Store(ctx context.Context, userID int64, in NotificationInput) (resource.Notification, error) {
	if err := requireUser(userID); err != nil {
		return resource.Notification{}, err
	}
	if err := u.v.Gate(ctx, &in); err != nil {
		return resource.Notification{}, err
	}

	n := model.Notification{
		Title:    in.Title,
		Message:  in.Message,
		Type:     in.Type,
		IsGlobal: *in.IsGlobal,
	}
	if err := u.inbox.CreateAndDistribute(ctx, &n, userID); err != nil {
		return resource.Notification{}, writeFailed("create", "notification", err)
	}
	return resource.NewNotification(n), nil
}

func (u *NotificationUsecase) Show(ctx context.Context, userID int64, id int64) (resource.Notification, error) {
	n, err := u.visible(ctx, userID, id)
	if err != nil {
		return resource.Notification{}, err
	}
	return resource.NewNotification(n), nil
}

func (u *NotificationUsecase) Update(ctx context.Context, userID int64, id int64, in NotificationPatch) (resource.Notification, error) {
	if err := requireUser(userID); err != nil {
		return resource.Notification{}, err
	}
	if err := u.v.Gate(ctx, &in); err != nil {
		return resource.Notification{}, err
	}
	n, err := u.visible(ctx, userID, id)
	if err != nil {
		return resource.Notification{}, err
	}

	var cols []string
	if in.Title != nil {
		n.Title = *in.Title
		cols = append(cols, "title")
	}
	if in.Message != nil {
		n.Message = *in.Message
		cols = append(cols, "message")
	}
	if in.Type != nil {
		n.Type = *in.Type
		cols = append(cols, "type")
	}
	if in.IsGlobal != nil {
		n.IsGlobal = *in.IsGlobal
		cols = append(cols, "is_global")
	}
	if len(cols) == 0 {
		return resource.NewNotification(n), nil
	}

	if err := u.notifications.Update(ctx, id, n, cols...); err != nil {
		return resource.Notification{}, writeFailed("update", "notification", err)
	}
	return u.Show(ctx, userID, id)
}

// 自分への配信を外すだけ。グローバル通知は外せない。
func (u *NotificationUsecase) Destroy(ctx context.Context, userID int64, id int64) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	n, err := find(ctx, u.notifications, id, "notification")
	if err != nil {
		return err
	}
	if n.IsGlobal {
		return NewHTTPError(http.StatusForbidden, "global notifications cannot be deleted")
	}

	attached, err := u.inbox.IsAttached(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("check notification %d: %w", id, err)
	}
	if !attached {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if err := u.inbox.Detach(ctx, userID, id); err != nil {
		return fmt.Errorf("detach notification %d: %w", id, err)
	}
	return nil
}

// DELETE /notifications
func (u *NotificationUsecase) ClearAll(ctx context.Context, userID int64) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := u.inbox.DetachAll(ctx, userID); err != nil {
		return fmt.Errorf("clear notifications of %d: %w", userID, err)
	}
	return nil
}

// グローバル or 自分に配信済み
func (u *NotificationUsecase) visible(ctx context.Context, userID int64, id int64) (model.Notification, error) {
	if err := requireUser(userID); err != nil {
		return model.Notification{}, err
	}
	n, err := find(ctx, u.notifications, id, "notification")
	if err != nil {
		return model.Notification{}, err
	}
	if n.IsGlobal {
		return n, nil
	}

	attached, err := u.inbox.IsAttached(ctx, userID, id)
	if err != nil {
		return model.Notification{}, fmt.Errorf("check notification %d: %w", id, err)
	}
	if !attached {
		return model.Notification{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return n, nil
}
