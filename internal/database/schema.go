package database

// SetupSchema creates all application tables.
func (db *DB) SetupSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
		    id VARCHAR(36) PRIMARY KEY,
		    name VARCHAR(255) NOT NULL,
		    base_price DECIMAL(10,2) NOT NULL,
		    stock_quantity INT NOT NULL DEFAULT 0,
		    attributes JSON,
		    created_at DATETIME(6) NOT NULL,
		    updated_at DATETIME(6) NOT NULL,
		    INDEX idx_name (name)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS orders (
		    id VARCHAR(36) PRIMARY KEY,
		    customer_id VARCHAR(36) NOT NULL,
		    status ENUM('draft', 'confirmed', 'processing', 'shipped', 'delivered', 'cancelled') NOT NULL DEFAULT 'draft',
		    total DECIMAL(10,2) NOT NULL,
		    shipping_address JSON,
		    created_at DATETIME(6) NOT NULL,
		    updated_at DATETIME(6) NOT NULL,
		    INDEX idx_customer_id (customer_id),
		    INDEX idx_status (status),
		    INDEX idx_created_at (created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS order_items (
		    id VARCHAR(36) PRIMARY KEY,
		    order_id VARCHAR(36) NOT NULL,
		    product_id VARCHAR(36) NOT NULL,
		    quantity INT NOT NULL,
		    price DECIMAL(10,2) NOT NULL,
		    product_snapshot JSON,
		    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		    INDEX idx_order_id (order_id),
		    INDEX idx_product_id (product_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS order_status_transitions (
		    id VARCHAR(36) PRIMARY KEY,
		    from_status VARCHAR(32) NOT NULL,
		    to_status VARCHAR(32) NOT NULL,
		    UNIQUE KEY uk_edge (from_status, to_status)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS worker_configurations (
		    id VARCHAR(36) PRIMARY KEY,
		    worker_type ENUM('email', 'webhook', 'inventory') NOT NULL,
		    name VARCHAR(255) NOT NULL,
		    enabled BOOLEAN NOT NULL DEFAULT TRUE,
		    trigger_statuses JSON,
		    config JSON,
		    created_at DATETIME(6) NOT NULL,
		    updated_at DATETIME(6) NOT NULL,
		    INDEX idx_worker_type (worker_type),
		    INDEX idx_enabled (enabled)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// CleanupData removes all application data (but keeps schema)
func (db *DB) CleanupData() error {
	queries := []string{
		"DELETE FROM order_items",
		"DELETE FROM orders",
		"DELETE FROM worker_configurations",
		"DELETE FROM order_status_transitions",
		"DELETE FROM products",
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// DropSchema removes all application tables
func (db *DB) DropSchema() error {
	queries := []string{
		"DROP TABLE IF EXISTS order_items",
		"DROP TABLE IF EXISTS orders",
		"DROP TABLE IF EXISTS worker_configurations",
		"DROP TABLE IF EXISTS order_status_transitions",
		"DROP TABLE IF EXISTS products",
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
