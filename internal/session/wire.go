package session

import (
	"database/sql"

	"comanda/internal/config"
	"comanda/internal/session/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLSessionRepository(db)
	svc := NewService(db, repo, logger, cfg.Order.TxTimeout, cfg.Order.MaxRetryAttempts)
	return NewController(svc, logger)
}
