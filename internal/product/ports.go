package product

import (
	"context"
	"database/sql"

	"comanda/internal/domain"

	"github.com/shopspring/decimal"
)

type Service interface {
	List(ctx context.Context, name string) ([]domain.Product, error)
	Create(ctx context.Context, name string, price decimal.Decimal) (int, error)
	Update(ctx context.Context, id int, name string, price decimal.Decimal) error
	Delete(ctx context.Context, id int) error
}

type Repository interface {
	List(ctx context.Context, name string) ([]domain.Product, error)
	FindByIDTx(ctx context.Context, tx *sql.Tx, id int) (*domain.Product, error)
	Insert(ctx context.Context, name string, price decimal.Decimal) (int, error)
	Update(ctx context.Context, id int, name string, price decimal.Decimal) error
	Delete(ctx context.Context, id int) error
}
