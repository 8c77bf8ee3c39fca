package server

import (
	"errors"
	"fmt"

	"github.com/matthieukhl/oms/internal/models"
	"github.com/matthieukhl/oms/internal/orders"
	"github.com/shopspring/decimal"
)

type createOrderItemRequest struct {
	ProductID string          `json:"productId" binding:"required,uuid"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
}

type shippingAddressRequest struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Country string `json:"country" binding:"required"`
}

type createOrderRequest struct {
	CustomerID      string                   `json:"customerId" binding:"required,uuid"`
	Items           []createOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress shippingAddressRequest   `json:"shippingAddress"`
}

// toInput validates what binding tags cannot express (decimal positivity)
// and converts the request into workflow input.
func (r *createOrderRequest) toInput() (orders.CreateOrderInput, error) {
	in := orders.CreateOrderInput{
		CustomerID: r.CustomerID,
		ShippingAddress: models.ShippingAddress{
			Street:  r.ShippingAddress.Street,
			City:    r.ShippingAddress.City,
			Zip:     r.ShippingAddress.Zip,
			Country: r.ShippingAddress.Country,
		},
	}

	for i, item := range r.Items {
		if !item.Price.IsPositive() {
			return in, fmt.Errorf("items[%d].price must be positive", i)
		}
		in.Items = append(in.Items, orders.CreateOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return in, nil
}

type updateOrderRequest struct {
	CustomerID      *string                 `json:"customerId" binding:"omitempty,uuid"`
	Status          *string                 `json:"status" binding:"omitempty,oneof=draft confirmed processing shipped delivered cancelled"`
	ShippingAddress *shippingAddressRequest `json:"shippingAddress"`
}

func (r *updateOrderRequest) toInput() orders.UpdateOrderInput {
	in := orders.UpdateOrderInput{
		CustomerID: r.CustomerID,
		Status:     r.Status,
	}
	if r.ShippingAddress != nil {
		in.ShippingAddress = &models.ShippingAddress{
			Street:  r.ShippingAddress.Street,
			City:    r.ShippingAddress.City,
			Zip:     r.ShippingAddress.Zip,
			Country: r.ShippingAddress.Country,
		}
	}
	return in
}

type createProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	StockQuantity int             `json:"stockQuantity" binding:"min=0"`
	Attributes    models.JSONMap  `json:"attributes"`
}

func (r *createProductRequest) toModel() (*models.Product, error) {
	if !r.BasePrice.IsPositive() {
		return nil, errors.New("basePrice must be positive")
	}
	return &models.Product{
		Name:          r.Name,
		BasePrice:     r.BasePrice,
		StockQuantity: r.StockQuantity,
		Attributes:    r.Attributes,
	}, nil
}

type updateProductRequest struct {
	Name          *string          `json:"name"`
	BasePrice     *decimal.Decimal `json:"basePrice"`
	StockQuantity *int             `json:"stockQuantity" binding:"omitempty,min=0"`
	Attributes    models.JSONMap   `json:"attributes"`
}

func (r *updateProductRequest) apply(p *models.Product) error {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.BasePrice != nil {
		if !r.BasePrice.IsPositive() {
			return errors.New("basePrice must be positive")
		}
		p.BasePrice = *r.BasePrice
	}
	if r.StockQuantity != nil {
		p.StockQuantity = *r.StockQuantity
	}
	if r.Attributes != nil {
		p.Attributes = r.Attributes
	}
	return nil
}

type createWorkerRequest struct {
	WorkerType      string         `json:"workerType" binding:"required,oneof=email webhook inventory"`
	Name            string         `json:"name" binding:"required"`
	Enabled         *bool          `json:"enabled"`
	TriggerStatuses []string       `json:"triggerStatuses" binding:"required,dive,oneof=draft confirmed processing shipped delivered cancelled"`
	Config          models.JSONMap `json:"config"`
}

func (r *createWorkerRequest) toModel() *models.WorkerConfiguration {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	return &models.WorkerConfiguration{
		WorkerType:      r.WorkerType,
		Name:            r.Name,
		Enabled:         enabled,
		TriggerStatuses: models.StringList(r.TriggerStatuses),
		Config:          r.Config,
	}
}

type updateWorkerRequest struct {
	WorkerType      *string        `json:"workerType" binding:"omitempty,oneof=email webhook inventory"`
	Name            *string        `json:"name"`
	Enabled         *bool          `json:"enabled"`
	TriggerStatuses []string       `json:"triggerStatuses" binding:"omitempty,dive,oneof=draft confirmed processing shipped delivered cancelled"`
	Config          models.JSONMap `json:"config"`
}

func (r *updateWorkerRequest) apply(w *models.WorkerConfiguration) {
	if r.WorkerType != nil {
		w.WorkerType = *r.WorkerType
	}
	if r.Name != nil {
		w.Name = *r.Name
	}
	if r.Enabled != nil {
		w.Enabled = *r.Enabled
	}
	if r.TriggerStatuses != nil {
		w.TriggerStatuses = models.StringList(r.TriggerStatuses)
	}
	if r.Config != nil {
		w.Config = r.Config
	}
}
