package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the test database. It expects a MySQL instance on
// localhost:3306 with a database named 'comanda_test' and skips the
// test when none is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/comanda_test?parseTime=true&clientFoundRows=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables creates the schema used by integration tests.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createTablesTable := `
	CREATE TABLE IF NOT EXISTS tables (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createSessionsTable := `
	CREATE TABLE IF NOT EXISTS tables_sessions (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		table_id INT NOT NULL,
		opened_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		closed_at DATETIME NULL,
		FOREIGN KEY (table_id) REFERENCES tables(id),
		INDEX idx_table_opened (table_id, opened_at)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_name (name)
	)`

	createOrdersTable := `
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
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"tables", createTablesTable},
		{"tables_sessions", createSessionsTable},
		{"products", createProductsTable},
		{"orders", createOrdersTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// CleanupTestDB empties the test tables and closes the connection.
// Children go first so the foreign keys do not get in the way.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"orders", "tables_sessions", "products", "tables"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// InsertTable seeds a catalog table row and returns its id.
func InsertTable(t *testing.T, db *sql.DB, name string) int {
	result, err := db.Exec(`INSERT INTO tables (name) VALUES (?)`, name)
	if err != nil {
		t.Fatalf("failed to insert table: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get table id: %v", err)
	}
	return int(id)
}

// InsertProduct seeds a product row and returns its id.
func InsertProduct(t *testing.T, db *sql.DB, name, price string) int {
	result, err := db.Exec(`INSERT INTO products (name, price) VALUES (?, ?)`, name, price)
	if err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get product id: %v", err)
	}
	return int(id)
}
