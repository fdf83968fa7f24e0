package session

import (
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

func (c *Controller) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		web.WriteError(w, logger, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if req.TableID <= 0 {
		msg := "table_id must be a positive integer"
		if req.TableID == 0 {
			msg = "table_id is required"
		}
		web.WriteError(w, logger, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "table_id",
			Message: msg,
		}))
		return
	}

	if err := c.service.Open(r.Context(), req.TableID); err != nil {
		web.WriteError(w, logger, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusCreated, nil)
}

func (c *Controller) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		logger.Warn("invalid session id in path", zap.String("id", idStr))
		web.WriteError(w, logger, apperrors.NewValidationError("invalid session id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		}))
		return
	}

	if err := c.service.Close(r.Context(), id); err != nil {
		web.WriteError(w, logger, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, nil)
}

func (c *Controller) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	sessions, err := c.service.List(r.Context())
	if err != nil {
		web.WriteError(w, logger, err)
		return
	}

	out := make([]dto.SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.SessionDTO{
			ID:       s.ID,
			TableID:  s.TableID,
			OpenedAt: s.OpenedAt,
			ClosedAt: s.ClosedAt,
		})
	}

	web.WriteJSON(w, logger, http.StatusOK, out)
}
