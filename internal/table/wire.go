package table

import (
	"database/sql"

	"comanda/internal/table/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	return NewController(repository.NewMySQLTableRepository(db), logger)
}
