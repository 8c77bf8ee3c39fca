package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matthieukhl/oms/internal/apperr"
	"github.com/matthieukhl/oms/internal/database"
	"github.com/matthieukhl/oms/internal/models"
)

// SQLStore persists orders and their items in MySQL.
type SQLStore struct {
	db *database.DB
}

func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Create writes the order and all of its items in a single transaction. A
// failure at any point rolls the whole order back; no partial order is ever
// visible.
func (s *SQLStore) Create(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op once committed
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, status, total, shipping_address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, order.ID, order.CustomerID, order.Status, order.Total, order.ShippingAddress, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price, product_snapshot)
			VALUES (?, ?, ?, ?, ?, ?)
		`, item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price, item.ProductSnapshot)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FindAll returns all orders with items attached, newest first.
func (s *SQLStore) FindAll(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_id, status, total, shipping_address, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	index := map[string]int{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.Total, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, err
		}
		o.Items = []models.OrderItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := s.queryItems(ctx, "SELECT id, order_id, product_id, quantity, price, product_snapshot FROM order_items ORDER BY order_id, id")
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return orders, nil
}

// FindOne returns the order with the given id and its items, or a
// NotFoundError.
func (s *SQLStore) FindOne(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer_id, status, total, shipping_address, created_at, updated_at
		FROM orders
		WHERE id = ?
	`, id).Scan(&o.ID, &o.CustomerID, &o.Status, &o.Total, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := s.queryItems(ctx, "SELECT id, order_id, product_id, quantity, price, product_snapshot FROM order_items WHERE order_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	if o.Items == nil {
		o.Items = []models.OrderItem{}
	}

	return &o, nil
}

// Update re-persists the order row. Items are immutable after creation.
func (s *SQLStore) Update(ctx context.Context, order *models.Order) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET customer_id = ?, status = ?, total = ?, shipping_address = ?, updated_at = ?
		WHERE id = ?
	`, order.CustomerID, order.Status, order.Total, order.ShippingAddress, order.UpdatedAt, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// Remove deletes the order; order_items cascade with the parent row.
func (s *SQLStore) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("Order", id)
	}

	return nil
}

func (s *SQLStore) queryItems(ctx context.Context, query string, args ...any) ([]models.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductSnapshot)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
