package models

import "time"

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderUpdated       = "order.updated"
	EventOrderCancelled     = "order.cancelled"
)

// OrderEvent is a transient domain event. Events are not persisted: if no
// handler is registered when one is published, it is lost.
type OrderEvent struct {
	Type      string         `json:"type"`
	OrderID   string         `json:"orderId"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}
