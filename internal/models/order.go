package models

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusDraft      = "draft"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	StatusDraft,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	return jsonValue(a)
}

func (a *ShippingAddress) Scan(src any) error {
	return scanJSON(src, a)
}

type Order struct {
	ID              string          `json:"id" db:"id"`
	CustomerID      string          `json:"customerId" db:"customer_id"`
	Status          string          `json:"status" db:"status"`
	Total           decimal.Decimal `json:"total" db:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress" db:"shipping_address"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

type OrderItem struct {
	ID              string          `json:"id" db:"id"`
	OrderID         string          `json:"orderId" db:"order_id"`
	ProductID       string          `json:"productId" db:"product_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	Price           decimal.Decimal `json:"price" db:"price"`
	ProductSnapshot ProductSnapshot `json:"productSnapshot" db:"product_snapshot"`
}

// OrderStatusTransition is one edge of the legal status graph. The edges are
// seeded as reference data; see AllowedTransitions for the in-process copy.
type OrderStatusTransition struct {
	ID         string `json:"id" db:"id"`
	FromStatus string `json:"fromStatus" db:"from_status"`
	ToStatus   string `json:"toStatus" db:"to_status"`
}

// AllowedTransitions is the legal status graph:
// draft -> confirmed -> processing -> shipped -> delivered, with cancellation
// possible from draft, confirmed and processing.
var AllowedTransitions = []OrderStatusTransition{
	{FromStatus: StatusDraft, ToStatus: StatusConfirmed},
	{FromStatus: StatusConfirmed, ToStatus: StatusProcessing},
	{FromStatus: StatusProcessing, ToStatus: StatusShipped},
	{FromStatus: StatusShipped, ToStatus: StatusDelivered},
	{FromStatus: StatusDraft, ToStatus: StatusCancelled},
	{FromStatus: StatusConfirmed, ToStatus: StatusCancelled},
	{FromStatus: StatusProcessing, ToStatus: StatusCancelled},
}

// CanTransition reports whether from -> to is an edge of the status graph.
func CanTransition(from, to string) bool {
	for _, t := range AllowedTransitions {
		if t.FromStatus == from && t.ToStatus == to {
			return true
		}
	}
	return false
}
