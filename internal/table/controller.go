package table

import (
	"net/http"
	"time"

	"comanda/internal/web"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TableDTO struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{
		repo:   repo,
		logger: logger,
	}
}

func (c *Controller) HandleListTables(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	tables, err := c.repo.ListAll(r.Context())
	if err != nil {
		web.WriteError(w, logger, err)
		return
	}

	out := make([]TableDTO, 0, len(tables))
	for _, t := range tables {
		out = append(out, TableDTO{
			ID:        t.ID,
			Name:      t.Name,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}

	web.WriteJSON(w, logger, http.StatusOK, out)
}
