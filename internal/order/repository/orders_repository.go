package repository

import (
	"context"
	"database/sql"
	"fmt"

	"comanda/internal/domain"

	"github.com/shopspring/decimal"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (int, error) {
	query := `INSERT INTO orders (table_session_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, order.TableSessionID, order.ProductID, order.Quantity, order.Price)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLOrderRepository) ListBySession(ctx context.Context, sessionID int) ([]domain.OrderLine, error) {
	query := `
		SELECT o.id, o.table_session_id, o.product_id, p.name, o.quantity, o.price,
		       o.created_at, o.updated_at
		FROM orders o
		INNER JOIN products p ON p.id = o.product_id
		WHERE o.table_session_id = ?
		ORDER BY o.created_at DESC, o.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		err := rows.Scan(
			&line.ID, &line.TableSessionID, &line.ProductID, &line.ProductName,
			&line.Quantity, &line.Price, &line.CreatedAt, &line.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return lines, nil
}

func (r *MySQLOrderRepository) SummarizeBySession(ctx context.Context, sessionID int) (*domain.OrderSummary, error) {
	// DECIMAL arithmetic keeps the sum exact; COALESCE makes an empty
	// session report zero instead of NULL.
	query := `
		SELECT COALESCE(SUM(price * quantity), 0), COALESCE(SUM(quantity), 0)
		FROM orders
		WHERE table_session_id = ?
	`

	summary := domain.OrderSummary{Total: decimal.Zero}
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&summary.Total, &summary.Quantity)
	if err != nil {
		return nil, fmt.Errorf("summarizing orders: %w", err)
	}

	return &summary, nil
}
