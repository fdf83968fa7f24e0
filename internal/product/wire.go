package product

import (
	"database/sql"

	"comanda/internal/product/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLProductRepository(db)
	svc := NewService(repo)
	return NewController(svc, logger)
}
