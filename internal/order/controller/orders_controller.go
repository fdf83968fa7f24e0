package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"comanda/internal/dto"
	apperrors "comanda/internal/errors"
	"comanda/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxOrderQuantity = 10000

type OrdersUseCase interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) error
	ListBySession(ctx context.Context, sessionID int) ([]dto.OrderLineDTO, error)
	Summarize(ctx context.Context, sessionID int) (*dto.OrderSummaryDTO, error)
}

type OrdersController struct {
	useCase OrdersUseCase
	logger  *zap.Logger
}

func NewOrdersController(useCase OrdersUseCase, logger *zap.Logger) *OrdersController {
	return &OrdersController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrdersController) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		web.WriteError(w, logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if err := validateCreateOrderRequest(req); err != nil {
		web.WriteError(w, logger, err)
		return
	}

	if err := c.useCase.CreateOrder(r.Context(), req); err != nil {
		web.WriteError(w, logger, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusCreated, nil)
}

func (c *OrdersController) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sessionID, err := sessionIDFromPath(r)
	if err != nil {
		web.WriteError(w, logger, err)
		return
	}

	lines, err := c.useCase.ListBySession(r.Context(), sessionID)
	if err != nil {
		web.WriteError(w, logger, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, lines)
}

func (c *OrdersController) HandleSummarizeOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sessionID, err := sessionIDFromPath(r)
	if err != nil {
		web.WriteError(w, logger, err)
		return
	}

	summary, err := c.useCase.Summarize(r.Context(), sessionID)
	if err != nil {
		web.WriteError(w, logger, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, summary)
}

func validateCreateOrderRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.TableSessionID <= 0 {
		msg := "table_session_id must be a positive integer"
		if req.TableSessionID == 0 {
			msg = "table_session_id is required"
		}
		details = append(details, apperrors.ValidationDetail{
			Field:   "table_session_id",
			Message: msg,
		})
	}

	if req.ProductID <= 0 {
		msg := "product_id must be a positive integer"
		if req.ProductID == 0 {
			msg = "product_id is required"
		}
		details = append(details, apperrors.ValidationDetail{
			Field:   "product_id",
			Message: msg,
		})
	}

	if req.Quantity < 1 || req.Quantity > maxOrderQuantity {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be between 1 and 10000",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func sessionIDFromPath(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "table_session_id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid session id", apperrors.ValidationDetail{
			Field:   "table_session_id",
			Message: "table_session_id must be a positive integer",
		})
	}
	return id, nil
}
