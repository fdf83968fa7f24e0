package repository

import (
	"context"
	"database/sql"
	"fmt"

	"comanda/internal/domain"
	"comanda/internal/errors"
)

type MySQLSessionRepository struct {
	db *sql.DB
}

func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{db: db}
}

func (r *MySQLSessionRepository) FindLatestByTableForUpdate(ctx context.Context, tx *sql.Tx, tableID int) (*domain.TableSession, error) {
	query := `
		SELECT id, table_id, opened_at, closed_at
		FROM tables_sessions
		WHERE table_id = ?
		ORDER BY opened_at DESC, id DESC
		LIMIT 1
		FOR UPDATE
	`

	var session domain.TableSession
	err := tx.QueryRowContext(ctx, query, tableID).Scan(
		&session.ID, &session.TableID, &session.OpenedAt, &session.ClosedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest session for table: %w", err)
	}

	return &session, nil
}

func (r *MySQLSessionRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.TableSession, error) {
	query := `
		SELECT id, table_id, opened_at, closed_at
		FROM tables_sessions
		WHERE id = ?
		FOR UPDATE
	`

	var session domain.TableSession
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.TableID, &session.OpenedAt, &session.ClosedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("session with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying session by id: %w", err)
	}

	return &session, nil
}

func (r *MySQLSessionRepository) Insert(ctx context.Context, tx *sql.Tx, tableID int) error {
	query := `INSERT INTO tables_sessions (table_id, opened_at, closed_at) VALUES (?, NOW(), NULL)`

	if _, err := tx.ExecContext(ctx, query, tableID); err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	return nil
}

func (r *MySQLSessionRepository) SetClosed(ctx context.Context, tx *sql.Tx, id int) error {
	query := `UPDATE tables_sessions SET closed_at = NOW() WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("closing session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("session with id %d not found", id))
	}

	return nil
}

func (r *MySQLSessionRepository) ListAll(ctx context.Context) ([]domain.TableSession, error) {
	query := `
		SELECT id, table_id, opened_at, closed_at
		FROM tables_sessions
		ORDER BY opened_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.TableSession
	for rows.Next() {
		var s domain.TableSession
		if err := rows.Scan(&s.ID, &s.TableID, &s.OpenedAt, &s.ClosedAt); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session rows: %w", err)
	}

	return sessions, nil
}
