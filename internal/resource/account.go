package resource

import (
	"time"

	"storefront/internal/domain/model"
)

type OrderDetail struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	TotalAmount     float64   `json:"total_amount"`
	OrderStatus     uint8     `json:"order_status"`
	ShippingAddress string    `json:"shipping_address"`
	ShippingCost    float64   `json:"shipping_cost"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewOrderDetail(o model.OrderDetail) OrderDetail {
	return OrderDetail{
		ID:              o.ID,
		UserID:          o.UserID,
		TotalAmount:     money(o.TotalAmount),
		OrderStatus:     o.OrderStatus,
		ShippingAddress: o.ShippingAddress,
		ShippingCost:    money(o.ShippingCost),
		CreatedAt:       o.CreatedAt,
	}
}

func NewOrderDetails(orders []model.OrderDetail) []OrderDetail {
	return Collection(orders, NewOrderDetail)
}

type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsGlobal  bool      `json:"is_global"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotification(n model.Notification) Notification {
	return Notification{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsGlobal:  n.IsGlobal,
		CreatedAt: n.CreatedAt,
	}
}

func NewNotifications(ns []model.Notification) []Notification {
	return Collection(ns, NewNotification)
}
