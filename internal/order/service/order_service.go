package service

import (
	"context"
	"database/sql"
	"time"

	"comanda/internal/domain"
	apperrors "comanda/internal/errors"

	"go.uber.org/zap"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type SessionRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.TableSession, error)
}

type ProductRepository interface {
	FindByIDTx(ctx context.Context, tx *sql.Tx, id int) (*domain.Product, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (int, error)
}

type OrderService struct {
	db          TransactionManager
	sessionRepo SessionRepository
	productRepo ProductRepository
	orderRepo   OrderRepository
	logger      *zap.Logger
	txTimeout   time.Duration
}

func NewOrderService(
	db TransactionManager,
	sessionRepo SessionRepository,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *OrderService {
	return &OrderService{
		db:          db,
		sessionRepo: sessionRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		logger:      logger,
		txTimeout:   txTimeout,
	}
}

// CreateOrder registers one order line for an open session, capturing
// the product's current price. The session check, product read and
// insert run in a single RepeatableRead transaction; the FOR UPDATE
// lock on the session row keeps it from closing between the check and
// the insert.
func (s *OrderService) CreateOrder(ctx context.Context, sessionID, productID, quantity int) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	// Rollback is a no-op after commit.
	defer tx.Rollback()

	session, err := s.sessionRepo.FindByIDForUpdate(txCtx, tx, sessionID)
	if err != nil {
		return err
	}

	if !session.IsOpen() {
		return apperrors.NewInvalidStateError("session is closed")
	}

	product, err := s.productRepo.FindByIDTx(txCtx, tx, productID)
	if err != nil {
		return err
	}

	order := domain.Order{
		TableSessionID: sessionID,
		ProductID:      productID,
		Quantity:       quantity,
		Price:          product.Price,
	}

	orderID, err := s.orderRepo.Insert(txCtx, tx, order)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Int("sessionId", sessionID), zap.Error(err))
		return err
	}

	s.logger.Info("order created",
		zap.Int("orderId", orderID),
		zap.Int("sessionId", sessionID),
		zap.Int("productId", productID),
		zap.Int("quantity", quantity),
		zap.String("price", product.Price.String()),
	)

	return nil
}
