package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "comanda/internal/errors"
	"comanda/internal/session/repository"
	"comanda/internal/testutil"
)

// Unit Tests

type mockTransactionManager struct {
	BeginTxFunc func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func (m *mockTransactionManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.BeginTxFunc(ctx, opts)
}

func TestSessionService_Open_BeginTxFails(t *testing.T) {
	txErr := errors.New("driver: bad connection")
	db := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			return nil, txErr
		},
	}

	svc := NewService(db, nil, zap.NewNop(), time.Second, 3)

	err := svc.Open(context.Background(), 5)
	assert.Equal(t, txErr, err)
}

func TestSessionService_Open_RetriesDeadlock(t *testing.T) {
	attempts := 0
	db := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			attempts++
			return nil, &mysql.MySQLError{Number: 1213}
		},
	}

	svc := NewService(db, nil, zap.NewNop(), time.Second, 3)

	err := svc.Open(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, 3, attempts)

	internalErr, ok := apperrors.IsInternalError(err)
	require.True(t, ok)
	assert.Equal(t, "max retries exceeded", internalErr.Message)

	var mysqlErr *mysql.MySQLError
	require.ErrorAs(t, err, &mysqlErr)
	assert.Equal(t, uint16(1213), mysqlErr.Number)
}

func TestSessionService_Open_NoRetryOnOtherErrors(t *testing.T) {
	attempts := 0
	txErr := errors.New("driver: bad connection")
	db := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			attempts++
			return nil, txErr
		},
	}

	svc := NewService(db, nil, zap.NewNop(), time.Second, 3)

	err := svc.Open(context.Background(), 5)
	assert.Equal(t, txErr, err)
	assert.Equal(t, 1, attempts)
}

func TestSessionService_Close_BeginTxFails(t *testing.T) {
	txErr := errors.New("driver: bad connection")
	db := &mockTransactionManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			return nil, txErr
		},
	}

	svc := NewService(db, nil, zap.NewNop(), time.Second, 3)

	err := svc.Close(context.Background(), 1)
	assert.Equal(t, txErr, err)
}

// Integration Tests

func newIntegrationService(t *testing.T) (Service, *sql.DB) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	repo := repository.NewMySQLSessionRepository(db)
	return NewService(db, repo, zap.NewNop(), 5*time.Second, 3), db
}

func countOpenSessions(t *testing.T, db *sql.DB, tableID int) int {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM tables_sessions WHERE table_id = ? AND closed_at IS NULL`,
		tableID,
	).Scan(&count)
	require.NoError(t, err)
	return count
}

func TestSessionService_Open_Success(t *testing.T) {
	svc, db := newIntegrationService(t)
	tableID := testutil.InsertTable(t, db, "Table 5")

	err := svc.Open(context.Background(), tableID)
	require.NoError(t, err)

	assert.Equal(t, 1, countOpenSessions(t, db, tableID))
}

func TestSessionService_Open_TableAlreadyInUse(t *testing.T) {
	svc, db := newIntegrationService(t)
	tableID := testutil.InsertTable(t, db, "Table 5")

	require.NoError(t, svc.Open(context.Background(), tableID))

	err := svc.Open(context.Background(), tableID)
	require.Error(t, err)

	ce, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "table already in use", ce.Message)

	// The failed open must not leave a second open session behind.
	assert.Equal(t, 1, countOpenSessions(t, db, tableID))
}

func TestSessionService_Open_AfterClose(t *testing.T) {
	svc, db := newIntegrationService(t)
	tableID := testutil.InsertTable(t, db, "Table 5")

	ctx := context.Background()
	require.NoError(t, svc.Open(ctx, tableID))

	sessions, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	require.NoError(t, svc.Close(ctx, sessions[0].ID))
	require.NoError(t, svc.Open(ctx, tableID))

	assert.Equal(t, 1, countOpenSessions(t, db, tableID))
}

func TestSessionService_Close_NotFound(t *testing.T) {
	svc, _ := newIntegrationService(t)

	err := svc.Close(context.Background(), 9999)
	require.Error(t, err)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestSessionService_Close_AlreadyClosed(t *testing.T) {
	svc, db := newIntegrationService(t)

	ctx := context.Background()
	tableID := testutil.InsertTable(t, db, "Table 7")
	require.NoError(t, svc.Open(ctx, tableID))

	sessions, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	require.NoError(t, svc.Close(ctx, sessions[0].ID))

	err = svc.Close(ctx, sessions[0].ID)
	require.Error(t, err)

	ise, ok := apperrors.IsInvalidStateError(err)
	assert.True(t, ok)
	assert.Equal(t, "session is already closed", ise.Message)
}

func TestSessionService_List_OrderedByOpenedAtDesc(t *testing.T) {
	svc, db := newIntegrationService(t)
	tableID := testutil.InsertTable(t, db, "Table 1")

	// Two closed cycles with distinct opened_at values.
	_, err := db.Exec(
		`INSERT INTO tables_sessions (table_id, opened_at, closed_at)
		 VALUES (?, NOW() - INTERVAL 2 HOUR, NOW() - INTERVAL 1 HOUR),
		        (?, NOW() - INTERVAL 30 MINUTE, NOW())`,
		tableID, tableID,
	)
	require.NoError(t, err)

	sessions, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].OpenedAt.After(sessions[1].OpenedAt))
}
