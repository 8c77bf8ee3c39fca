package models

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	BasePrice     decimal.Decimal `json:"basePrice" db:"base_price"`
	StockQuantity int             `json:"stockQuantity" db:"stock_quantity"`
	Attributes    JSONMap         `json:"attributes" db:"attributes"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProductSnapshot is an immutable copy of a product embedded in an order item
// at order time. It decouples order history from later product edits.
type ProductSnapshot struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	Attributes JSONMap         `json:"attributes"`
}

func (s ProductSnapshot) Value() (driver.Value, error) {
	return jsonValue(s)
}

func (s *ProductSnapshot) Scan(src any) error {
	return scanJSON(src, s)
}
