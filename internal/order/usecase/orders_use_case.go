package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"comanda/internal/domain"
	"comanda/internal/dto"
	apperrors "comanda/internal/errors"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, sessionID, productID, quantity int) error
}

type OrderReader interface {
	ListBySession(ctx context.Context, sessionID int) ([]domain.OrderLine, error)
	SummarizeBySession(ctx context.Context, sessionID int) (*domain.OrderSummary, error)
}

type OrdersUseCase struct {
	service          OrderService
	reader           OrderReader
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewOrdersUseCase(
	service OrderService,
	reader OrderReader,
	logger *zap.Logger,
	maxRetryAttempts int,
) *OrdersUseCase {
	// A misconfigured retry budget must never disable order creation.
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &OrdersUseCase{
		service:          service,
		reader:           reader,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

// CreateOrder runs the transactional create, retrying a bounded number
// of times when MySQL reports a deadlock or lock wait timeout.
func (uc *OrdersUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) error {
	uc.logger.Info("create order started",
		zap.Int("sessionId", req.TableSessionID),
		zap.Int("productId", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)

	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	var lastErr error
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		err := uc.service.CreateOrder(ctx, req.TableSessionID, req.ProductID, req.Quantity)
		if err == nil {
			return nil
		}

		if !isDeadlockError(err) {
			return err
		}
		lastErr = err

		if attempt < uc.maxRetryAttempts {
			backoff := backoffs[len(backoffs)-1]
			if attempt-1 < len(backoffs) {
				backoff = backoffs[attempt-1]
			}
			// ±20% jitter keeps colliding retries apart.
			jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
			time.Sleep(jitter)
			uc.logger.Warn("deadlock detected, retrying",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", uc.maxRetryAttempts),
				zap.Int("sessionId", req.TableSessionID),
			)
		}
	}

	return apperrors.NewInternalError("max retries exceeded", lastErr)
}

func (uc *OrdersUseCase) ListBySession(ctx context.Context, sessionID int) ([]dto.OrderLineDTO, error) {
	lines, err := uc.reader.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.OrderLineDTO, 0, len(lines))
	for _, line := range lines {
		out = append(out, dto.OrderLineDTO{
			ID:             line.ID,
			TableSessionID: line.TableSessionID,
			ProductID:      line.ProductID,
			Name:           line.ProductName,
			Quantity:       line.Quantity,
			Price:          line.Price,
			Total:          line.Total(),
			CreatedAt:      line.CreatedAt,
		})
	}

	return out, nil
}

func (uc *OrdersUseCase) Summarize(ctx context.Context, sessionID int) (*dto.OrderSummaryDTO, error) {
	summary, err := uc.reader.SummarizeBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &dto.OrderSummaryDTO{
		Total:    summary.Total,
		Quantity: summary.Quantity,
	}, nil
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
