package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matthieukhl/oms/internal/models"
	"github.com/shopspring/decimal"
)

// Seed clears reference data and repopulates products, the status transition
// graph and the default worker configurations.
func Seed(db *DB) error {
	for _, query := range []string{
		"DELETE FROM worker_configurations",
		"DELETE FROM order_status_transitions",
		"DELETE FROM products",
	} {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	if err := seedProducts(db); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	if err := seedTransitions(db); err != nil {
		return fmt.Errorf("failed to seed status transitions: %w", err)
	}
	if err := seedWorkers(db); err != nil {
		return fmt.Errorf("failed to seed worker configurations: %w", err)
	}

	return nil
}

func seedProducts(db *DB) error {
	products := []models.Product{
		{
			Name:          "White Table",
			BasePrice:     decimal.NewFromFloat(499.99),
			StockQuantity: 15,
			Attributes: models.JSONMap{
				"farbe":    "White",
				"breite":   160,
				"tiefe":    80,
				"hoehe":    75,
				"material": "Wood",
			},
		},
		{
			Name:          "Monitor 27\" 4K",
			BasePrice:     decimal.NewFromFloat(599.99),
			StockQuantity: 30,
			Attributes: models.JSONMap{
				"groesse":     27,
				"aufloesung":  "3840x2160",
				"panelTyp":    "IPS",
				"refreshRate": 60,
			},
		},
	}

	now := time.Now().UTC()
	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (id, name, base_price, stock_quantity, attributes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), p.Name, p.BasePrice, p.StockQuantity, p.Attributes, now, now)
		if err != nil {
			return err
		}
	}

	return nil
}

func seedTransitions(db *DB) error {
	for _, t := range models.AllowedTransitions {
		_, err := db.Exec(`
			INSERT INTO order_status_transitions (id, from_status, to_status)
			VALUES (?, ?, ?)
		`, uuid.NewString(), t.FromStatus, t.ToStatus)
		if err != nil {
			return err
		}
	}

	return nil
}

func seedWorkers(db *DB) error {
	workers := []models.WorkerConfiguration{
		{
			WorkerType:      models.WorkerEmail,
			Name:            "Order Confirmation Email",
			Enabled:         true,
			TriggerStatuses: models.StringList{models.StatusConfirmed},
			Config: models.JSONMap{
				"smtpHost":   "smtp.example.com",
				"smtpPort":   587,
				"from":       "orders@oms-system.com",
				"templateId": "order-confirmation",
			},
		},
		{
			WorkerType:      models.WorkerEmail,
			Name:            "Shipping Notification Email",
			Enabled:         true,
			TriggerStatuses: models.StringList{models.StatusShipped},
			Config: models.JSONMap{
				"smtpHost":   "smtp.example.com",
				"smtpPort":   587,
				"from":       "shipping@oms-system.com",
				"templateId": "shipping-notification",
			},
		},
		{
			WorkerType:      models.WorkerWebhook,
			Name:            "Warehouse API Integration",
			Enabled:         true,
			TriggerStatuses: models.StringList{models.StatusConfirmed, models.StatusProcessing},
			Config: models.JSONMap{
				"url":    "https://warehouse.example.com/api/orders",
				"method": "POST",
				"headers": map[string]any{
					"Authorization": "Bearer YOUR_API_KEY",
					"Content-Type":  "application/json",
				},
				"timeout": 5000,
			},
		},
		{
			WorkerType:      models.WorkerInventory,
			Name:            "Stock Reduction Service",
			Enabled:         true,
			TriggerStatuses: models.StringList{models.StatusConfirmed},
			Config: models.JSONMap{
				"apiUrl":      "https://inventory.example.com/api/v1",
				"apiKey":      "YOUR_INVENTORY_API_KEY",
				"autoReserve": true,
			},
		},
		{
			WorkerType:      models.WorkerWebhook,
			Name:            "Shipping Provider API",
			Enabled:         true,
			TriggerStatuses: models.StringList{models.StatusProcessing},
			Config: models.JSONMap{
				"url":    "https://shipping-provider.example.com/api/shipments",
				"method": "POST",
				"headers": map[string]any{
					"API-Key": "YOUR_SHIPPING_API_KEY",
				},
			},
		},
	}

	now := time.Now().UTC()
	for _, w := range workers {
		_, err := db.Exec(`
			INSERT INTO worker_configurations (id, worker_type, name, enabled, trigger_statuses, config, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), w.WorkerType, w.Name, w.Enabled, w.TriggerStatuses, w.Config, now, now)
		if err != nil {
			return err
		}
	}

	return nil
}
