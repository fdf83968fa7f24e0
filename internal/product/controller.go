package product

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	apperrors "comanda/internal/errors"
	"comanda/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	name := strings.TrimSpace(r.URL.Query().Get("name"))

	products, err := c.service.List(r.Context(), name)
	if err != nil {
		web.WriteError(w, logger, err)
		return
	}

	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, ProductDTO{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}

	web.WriteJSON(w, logger, http.StatusOK, out)
}

func (c *Controller) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	req, err := decodeProductRequest(r)
	if err != nil {
		logger.Warn("invalid product payload", zap.Error(err))
		web.WriteError(w, logger, err)
		return
	}

	id, err := c.service.Create(r.Context(), req.Name, req.Price)
	if err != nil {
		web.WriteError(w, logger, err)
		return
	}

	logger.Info("product created", zap.Int("productId", id))
	web.WriteJSON(w, logger, http.StatusCreated, nil)
}

func (c *Controller) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := productIDFromPath(r)
	if err != nil {
		web.WriteError(w, logger, err)
		return
	}

	req, err := decodeProductRequest(r)
	if err != nil {
		logger.Warn("invalid product payload", zap.Error(err))
		web.WriteError(w, logger, err)
		return
	}

	if err := c.service.Update(r.Context(), id, req.Name, req.Price); err != nil {
		web.WriteError(w, logger, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, nil)
}

func (c *Controller) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := productIDFromPath(r)
	if err != nil {
		web.WriteError(w, logger, err)
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		web.WriteError(w, logger, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, nil)
}

func decodeProductRequest(r *http.Request) (*ProductRequest, error) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
	}

	var details []apperrors.ValidationDetail

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !req.Price.IsPositive() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be greater than zero",
		})
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return &req, nil
}

func productIDFromPath(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid product id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
	}
	return id, nil
}
