package session

import (
	"context"
	"database/sql"

	"comanda/internal/domain"
)

type Service interface {
	Open(ctx context.Context, tableID int) error
	Close(ctx context.Context, sessionID int) error
	List(ctx context.Context) ([]domain.TableSession, error)
}

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type Repository interface {
	// FindLatestByTableForUpdate returns the most recently opened session
	// for the table, locking it for the transaction, or nil when the
	// table has no sessions yet.
	FindLatestByTableForUpdate(ctx context.Context, tx *sql.Tx, tableID int) (*domain.TableSession, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.TableSession, error)
	Insert(ctx context.Context, tx *sql.Tx, tableID int) error
	SetClosed(ctx context.Context, tx *sql.Tx, id int) error
	ListAll(ctx context.Context) ([]domain.TableSession, error)
}
