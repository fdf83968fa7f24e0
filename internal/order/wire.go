package order

import (
	"database/sql"

	"comanda/internal/config"
	"comanda/internal/order/controller"
	orderrepo "comanda/internal/order/repository"
	"comanda/internal/order/service"
	"comanda/internal/order/usecase"
	productrepo "comanda/internal/product/repository"
	sessionrepo "comanda/internal/session/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.OrdersController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	sessionRepo := sessionrepo.NewMySQLSessionRepository(db)
	productRepo := productrepo.NewMySQLProductRepository(db)

	orderSvc := service.NewOrderService(
		db,
		sessionRepo,
		productRepo,
		orderRepo,
		logger,
		cfg.Order.TxTimeout,
	)

	useCase := usecase.NewOrdersUseCase(
		orderSvc,
		orderRepo,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	return controller.NewOrdersController(useCase, logger)
}
