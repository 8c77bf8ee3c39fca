// Package workers stores declarative worker configurations and dispatches
// order status changes to the side effects they describe.
package workers

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

// Create inserts a new worker configuration with a generated id.
func (s *Store) Create(ctx context.Context, w *models.WorkerConfiguration) error {
	w.ID = uuid.NewString()
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	if w.TriggerStatuses == nil {
		w.TriggerStatuses = models.StringList{}
	}
	if w.Config == nil {
		w.Config = models.JSONMap{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO worker_configurations (id, worker_type, name, enabled, trigger_statuses, config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, w.ID, w.WorkerType, w.Name, w.Enabled, w.TriggerStatuses, w.Config, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert worker configuration: %w", err)
	}

	return nil
}

// FindAll returns every worker configuration.
func (s *Store) FindAll(ctx context.Context) ([]models.WorkerConfiguration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, worker_type, name, enabled, trigger_statuses, config, created_at, updated_at
		FROM worker_configurations
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker configurations: %w", err)
	}
	defer rows.Close()

	workers := []models.WorkerConfiguration{}
	for rows.Next() {
		var w models.WorkerConfiguration
		err := rows.Scan(&w.ID, &w.WorkerType, &w.Name, &w.Enabled, &w.TriggerStatuses, &w.Config, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}

	return workers, rows.Err()
}

// FindOne returns the worker configuration with the given id, or a
// NotFoundError.
func (s *Store) FindOne(ctx context.Context, id string) (*models.WorkerConfiguration, error) {
	var w models.WorkerConfiguration
	err := s.db.QueryRowContext(ctx, `
		SELECT id, worker_type, name, enabled, trigger_statuses, config, created_at, updated_at
		FROM worker_configurations
		WHERE id = ?
	`, id).Scan(&w.ID, &w.WorkerType, &w.Name, &w.Enabled, &w.TriggerStatuses, &w.Config, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Worker", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query worker configuration: %w", err)
	}

	return &w, nil
}

// Update re-persists the full worker configuration row.
func (s *Store) Update(ctx context.Context, w *models.WorkerConfiguration) error {
	w.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		UPDATE worker_configurations
		SET worker_type = ?, name = ?, enabled = ?, trigger_statuses = ?, config = ?, updated_at = ?
		WHERE id = ?
	`, w.WorkerType, w.Name, w.Enabled, w.TriggerStatuses, w.Config, w.UpdatedAt, w.ID)
	if err != nil {
		return fmt.Errorf("failed to update worker configuration: %w", err)
	}

	return nil
}

// Remove deletes the worker configuration with the given id, or returns a
// NotFoundError.
func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM worker_configurations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete worker configuration: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("Worker", id)
	}

	return nil
}
