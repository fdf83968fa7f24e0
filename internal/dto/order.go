package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	TableSessionID int `json:"table_session_id"`
	ProductID      int `json:"product_id"`
	Quantity       int `json:"quantity"`
}

type OrderLineDTO struct {
	ID             int             `json:"id"`
	TableSessionID int             `json:"table_session_id"`
	ProductID      int             `json:"product_id"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"created_at"`
}

type OrderSummaryDTO struct {
	Total    decimal.Decimal `json:"total"`
	Quantity int             `json:"quantity"`
}
