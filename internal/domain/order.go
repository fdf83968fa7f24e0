package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one line item of a table session. Price is captured from the
// product at creation time and never recomputed.
type Order struct {
	ID             int
	TableSessionID int
	ProductID      int
	Quantity       int
	Price          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Total is the exact line total, price times quantity.
func (o Order) Total() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// OrderLine is an order joined with its product name for listings.
type OrderLine struct {
	Order
	ProductName string
}

// OrderSummary aggregates a session's orders. Both fields are zero, not
// null, for a session without orders.
type OrderSummary struct {
	Total    decimal.Decimal
	Quantity int
}
