package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "comanda/internal/errors"
	orderrepo "comanda/internal/order/repository"
	productrepo "comanda/internal/product/repository"
	sessionrepo "comanda/internal/session/repository"
	"comanda/internal/testutil"
)

// Unit Tests

type mockTransactionManager struct {
	BeginTxFunc func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func (m *mockTransactionManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.BeginTxFunc(ctx, opts)
}

func TestOrderService_CreateOrder_BeginTxFails(t *testing.T) {
	txErr := errors.New("driver: bad connection")
	db := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			return nil, txErr
		},
	}

	svc := NewOrderService(db, nil, nil, nil, zap.NewNop(), time.Second)

	err := svc.CreateOrder(context.Background(), 1, 1, 1)
	assert.Equal(t, txErr, err)
}

// Integration Tests

type fixture struct {
	svc       *OrderService
	db        *sql.DB
	tableID   int
	sessionID int
}

func newFixture(t *testing.T) *fixture {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	svc := NewOrderService(
		db,
		sessionrepo.NewMySQLSessionRepository(db),
		productrepo.NewMySQLProductRepository(db),
		orderrepo.NewMySQLOrderRepository(db),
		zap.NewNop(),
		5*time.Second,
	)

	tableID := testutil.InsertTable(t, db, "Table 5")

	result, err := db.Exec(`INSERT INTO tables_sessions (table_id) VALUES (?)`, tableID)
	require.NoError(t, err)
	sessionID, err := result.LastInsertId()
	require.NoError(t, err)

	return &fixture{svc: svc, db: db, tableID: tableID, sessionID: int(sessionID)}
}

func TestOrderService_CreateOrder_SessionNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.CreateOrder(context.Background(), 9999, 1, 1)
	require.Error(t, err)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderService_CreateOrder_SessionClosed(t *testing.T) {
	f := newFixture(t)
	productID := testutil.InsertProduct(t, f.db, "X-Burguer", "10.00")

	_, err := f.db.Exec(`UPDATE tables_sessions SET closed_at = NOW() WHERE id = ?`, f.sessionID)
	require.NoError(t, err)

	err = f.svc.CreateOrder(context.Background(), f.sessionID, productID, 1)
	require.Error(t, err)

	ise, ok := apperrors.IsInvalidStateError(err)
	assert.True(t, ok)
	assert.Equal(t, "session is closed", ise.Message)
}

func TestOrderService_CreateOrder_ProductNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.CreateOrder(context.Background(), f.sessionID, 9999, 1)
	require.Error(t, err)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	// Nothing half-written.
	var count int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestOrderService_CreateOrder_CapturesCurrentPrice(t *testing.T) {
	f := newFixture(t)
	productID := testutil.InsertProduct(t, f.db, "X-Burguer", "10.00")

	require.NoError(t, f.svc.CreateOrder(context.Background(), f.sessionID, productID, 2))

	// A later price change must not touch the recorded order.
	_, err := f.db.Exec(`UPDATE products SET price = '12.00' WHERE id = ?`, productID)
	require.NoError(t, err)

	var price decimal.Decimal
	var quantity int
	err = f.db.QueryRow(
		`SELECT price, quantity FROM orders WHERE table_session_id = ?`, f.sessionID,
	).Scan(&price, &quantity)
	require.NoError(t, err)

	assert.True(t, price.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 2, quantity)
}
