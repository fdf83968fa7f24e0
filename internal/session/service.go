package session

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"comanda/internal/domain"
	apperrors "comanda/internal/errors"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

type sessionService struct {
	db               TransactionManager
	repo             Repository
	logger           *zap.Logger
	txTimeout        time.Duration
	maxRetryAttempts int
}

func NewService(db TransactionManager, repo Repository, logger *zap.Logger, txTimeout time.Duration, maxRetryAttempts int) Service {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &sessionService{
		db:               db,
		repo:             repo,
		logger:           logger,
		txTimeout:        txTimeout,
		maxRetryAttempts: maxRetryAttempts,
	}
}

// Open creates a new session for the table unless one is still open.
// Concurrent first opens for the same table can deadlock on InnoDB gap
// locks, so the transactional attempt is retried a bounded number of
// times before giving up.
func (s *sessionService) Open(ctx context.Context, tableID int) error {
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	var lastErr error
	for attempt := 1; attempt <= s.maxRetryAttempts; attempt++ {
		err := s.openOnce(ctx, tableID)
		if err == nil {
			return nil
		}

		if !isDeadlockError(err) {
			return err
		}
		lastErr = err

		if attempt < s.maxRetryAttempts {
			backoff := backoffs[len(backoffs)-1]
			if attempt-1 < len(backoffs) {
				backoff = backoffs[attempt-1]
			}
			jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
			time.Sleep(jitter)
			s.logger.Warn("deadlock detected, retrying",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", s.maxRetryAttempts),
				zap.Int("tableId", tableID),
			)
		}
	}

	return apperrors.NewInternalError("max retries exceeded", lastErr)
}

// openOnce runs the check and the insert in one RepeatableRead
// transaction; the FOR UPDATE lock on the latest session row serializes
// concurrent opens for the same table.
func (s *sessionService) openOnce(ctx context.Context, tableID int) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	// Rollback is a no-op after commit.
	defer tx.Rollback()

	latest, err := s.repo.FindLatestByTableForUpdate(txCtx, tx, tableID)
	if err != nil {
		return err
	}

	if latest != nil && latest.IsOpen() {
		return apperrors.NewConflictError("table already in use")
	}

	if err := s.repo.Insert(txCtx, tx, tableID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Int("tableId", tableID), zap.Error(err))
		return err
	}

	s.logger.Info("session opened", zap.Int("tableId", tableID))
	return nil
}

func (s *sessionService) Close(ctx context.Context, sessionID int) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	session, err := s.repo.FindByIDForUpdate(txCtx, tx, sessionID)
	if err != nil {
		return err
	}

	if !session.IsOpen() {
		return apperrors.NewInvalidStateError("session is already closed")
	}

	if err := s.repo.SetClosed(txCtx, tx, sessionID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Int("sessionId", sessionID), zap.Error(err))
		return err
	}

	s.logger.Info("session closed", zap.Int("sessionId", sessionID))
	return nil
}

func (s *sessionService) List(ctx context.Context) ([]domain.TableSession, error) {
	return s.repo.ListAll(ctx)
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
