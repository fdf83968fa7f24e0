package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

// Bootstrap creates the schema if it does not exist yet. Statements are
// idempotent, so running it on every startup is safe.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	statements := []struct {
		table string
		query string
	}{
		{"tables", `
			CREATE TABLE IF NOT EXISTS tables (
				id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(100) NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
			)`},
		{"tables_sessions", `
			CREATE TABLE IF NOT EXISTS tables_sessions (
				id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
				table_id INT NOT NULL,
				opened_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				closed_at DATETIME NULL,
				FOREIGN KEY (table_id) REFERENCES tables(id),
				INDEX idx_table_opened (table_id, opened_at)
			)`},
		{"products", `
			CREATE TABLE IF NOT EXISTS products (
				id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				price DECIMAL(10,2) NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				INDEX idx_name (name)
			)`},
		{"orders", `
			CREATE TABLE IF NOT EXISTS orders (
				id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
				table_session_id INT NOT NULL,
				product_id INT NOT NULL,
				quantity INT NOT NULL DEFAULT 1,
				price DECIMAL(10,2) NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				FOREIGN KEY (table_session_id) REFERENCES tables_sessions(id),
				FOREIGN KEY (product_id) REFERENCES products(id),
				INDEX idx_session_created (table_session_id, created_at)
			)`},
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt.query); err != nil {
			return fmt.Errorf("creating table %s: %w", stmt.table, err)
		}
	}

	return nil
}
