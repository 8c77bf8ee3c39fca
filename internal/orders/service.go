// Package orders implements the order workflow engine: stock validation,
// product snapshotting, total computation, atomic persistence and event
// publication.
package orders

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/matthieukhl/oms/internal/apperr"
	"github.com/matthieukhl/oms/internal/metrics"
	"github.com/matthieukhl/oms/internal/models"
	"github.com/shopspring/decimal"
)

// Catalog is the product lookup the workflow validates against.
type Catalog interface {
	FindOne(ctx context.Context, id string) (*models.Product, error)
}

// Store persists orders. Create must write the order and all of its items as
// a single atomic unit.
type Store interface {
	Create(ctx context.Context, order *models.Order) error
	FindAll(ctx context.Context) ([]models.Order, error)
	FindOne(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Remove(ctx context.Context, id string) error
}

// Publisher delivers domain events. Publishing never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, event models.OrderEvent)
}

type Service struct {
	catalog Catalog
	store   Store
	queue   Publisher
	metrics *metrics.Metrics
}

func NewService(catalog Catalog, store Store, queue Publisher, m *metrics.Metrics) *Service {
	return &Service{
		catalog: catalog,
		store:   store,
		queue:   queue,
		metrics: m,
	}
}

type CreateOrderInput struct {
	CustomerID      string
	Items           []CreateOrderItemInput
	ShippingAddress models.ShippingAddress
}

type CreateOrderItemInput struct {
	ProductID string
	Quantity  int
	// Price is the caller-supplied price per unit, trusted over the live
	// base price so promotions and overrides can be applied at order time.
	Price decimal.Decimal
}

// Create validates every requested item against the catalog, computes the
// order total, persists the order with its items in one transaction and
// publishes an order.created event after the commit. Stock is checked but not
// reserved; the decrement belongs to the inventory worker.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	items := make([]models.OrderItem, 0, len(in.Items))
	total := decimal.Zero

	for _, it := range in.Items {
		product, err := s.catalog.FindOne(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}

		if product.StockQuantity < it.Quantity {
			return nil, apperr.InsufficientStock(product.Name, product.StockQuantity)
		}

		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))

		items = append(items, models.OrderItem{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			ProductSnapshot: models.ProductSnapshot{
				ID:        product.ID,
				Name:      product.Name,
				BasePrice: product.BasePrice,
				// Cloned so later product edits cannot reach into the order.
				Attributes: maps.Clone(product.Attributes),
			},
		})
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:              uuid.NewString(),
		CustomerID:      in.CustomerID,
		Status:          models.StatusDraft,
		Total:           total,
		ShippingAddress: in.ShippingAddress,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	if err := s.store.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	s.metrics.OrdersCreated.Inc()

	s.queue.Publish(ctx, models.OrderEvent{
		Type:      models.EventOrderCreated,
		OrderID:   order.ID,
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"order":      order,
			"customerId": order.CustomerID,
			"total":      order.Total,
			"itemsCount": len(order.Items),
		},
	})

	return order, nil
}

// FindAll returns all orders with items attached, newest first. Ties on
// createdAt keep the store's insertion order.
func (s *Service) FindAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

// FindOne returns the order with the given id, or a NotFoundError.
func (s *Service) FindOne(ctx context.Context, id string) (*models.Order, error) {
	return s.store.FindOne(ctx, id)
}

type UpdateOrderInput struct {
	CustomerID      *string
	Status          *string
	ShippingAddress *models.ShippingAddress
}

// Update applies a shallow field-level merge of the patch over the stored
// order and re-persists it. The status field is NOT validated against the
// transition graph; the graph is seeded as data only (see DESIGN.md).
func (s *Service) Update(ctx context.Context, id string, in UpdateOrderInput) (*models.Order, error) {
	order, err := s.store.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	previousStatus := order.Status
	if in.CustomerID != nil {
		order.CustomerID = *in.CustomerID
	}
	if in.Status != nil {
		order.Status = *in.Status
	}
	if in.ShippingAddress != nil {
		order.ShippingAddress = *in.ShippingAddress
	}
	order.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.queue.Publish(ctx, models.OrderEvent{
		Type:      models.EventOrderUpdated,
		OrderID:   order.ID,
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"order": order,
		},
	})

	if order.Status != previousStatus {
		s.queue.Publish(ctx, models.OrderEvent{
			Type:      models.EventOrderStatusChanged,
			OrderID:   order.ID,
			Timestamp: time.Now().UTC(),
			Data: map[string]any{
				"order":          order,
				"previousStatus": previousStatus,
				"newStatus":      order.Status,
			},
		})

		if order.Status == models.StatusCancelled {
			s.queue.Publish(ctx, models.OrderEvent{
				Type:      models.EventOrderCancelled,
				OrderID:   order.ID,
				Timestamp: time.Now().UTC(),
				Data: map[string]any{
					"order":          order,
					"previousStatus": previousStatus,
				},
			})
		}
	}

	return order, nil
}

// Remove deletes the order and, by cascade, its items.
func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := s.store.FindOne(ctx, id); err != nil {
		return err
	}
	return s.store.Remove(ctx, id)
}
