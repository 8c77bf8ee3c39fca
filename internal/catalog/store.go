// Package catalog is the product store of record. Reads are side-effect free
// and uncached; every lookup hits the database.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matthieukhl/oms/internal/apperr"
	"github.com/matthieukhl/oms/internal/database"
	"github.com/matthieukhl/oms/internal/models"
)

type Store struct {
	db *database.DB
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new product with a generated id.
func (s *Store) Create(ctx context.Context, p *models.Product) error {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Attributes == nil {
		p.Attributes = models.JSONMap{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, base_price, stock_quantity, attributes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.BasePrice, p.StockQuantity, p.Attributes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// FindAll returns every product, newest first.
func (s *Store) FindAll(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, base_price, stock_quantity, attributes, created_at, updated_at
		FROM products
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.BasePrice, &p.StockQuantity, &p.Attributes, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// FindOne returns the product with the given id, or a NotFoundError.
func (s *Store) FindOne(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, base_price, stock_quantity, attributes, created_at, updated_at
		FROM products
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.BasePrice, &p.StockQuantity, &p.Attributes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Update re-persists the full product row.
func (s *Store) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, base_price = ?, stock_quantity = ?, attributes = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.BasePrice, p.StockQuantity, p.Attributes, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Remove deletes the product with the given id, or returns a NotFoundError.
func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("Product", id)
	}

	return nil
}

// DecrementStock atomically reduces a product's stock. The guard in the WHERE
// clause makes the read-check-write a single statement, so concurrent
// decrements cannot drive stock negative.
func (s *Store) DecrementStock(ctx context.Context, id string, quantity int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - ?, updated_at = ?
		WHERE id = ? AND stock_quantity >= ?
	`, quantity, time.Now().UTC(), id, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("stock decrement rejected for product %s (missing or below %d)", id, quantity)
	}

	return nil
}
