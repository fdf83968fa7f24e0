package table

import (
	"context"

	"comanda/internal/domain"
)

type Repository interface {
	ListAll(ctx context.Context) ([]domain.Table, error)
}
