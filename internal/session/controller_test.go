package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"comanda/internal/domain"
	"comanda/internal/dto"
	apperrors "comanda/internal/errors"
	"comanda/internal/web"
)

type mockService struct {
	OpenFunc  func(ctx context.Context, tableID int) error
	CloseFunc func(ctx context.Context, sessionID int) error
	ListFunc  func(ctx context.Context) ([]domain.TableSession, error)
}

func (m *mockService) Open(ctx context.Context, tableID int) error {
	return m.OpenFunc(ctx, tableID)
}

func (m *mockService) Close(ctx context.Context, sessionID int) error {
	return m.CloseFunc(ctx, sessionID)
}

func (m *mockService) List(ctx context.Context) ([]domain.TableSession, error) {
	return m.ListFunc(ctx)
}

func TestHandleOpenSession_Success(t *testing.T) {
	var gotTableID int
	ctrl := NewController(&mockService{
		OpenFunc: func(ctx context.Context, tableID int) error {
			gotTableID = tableID
			return nil
		},
	}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/tables-sessions", strings.NewReader(`{"table_id":5}`))
	rec := httptest.NewRecorder()

	ctrl.HandleOpenSession(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, 5, gotTableID)
}

func TestHandleOpenSession_InvalidJSON(t *testing.T) {
	ctrl := NewController(&mockService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/tables-sessions", strings.NewReader(`{`))
	rec := httptest.NewRecorder()

	ctrl.HandleOpenSession(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "body", resp.Issues[0].Field)
}

func TestHandleOpenSession_MissingTableID(t *testing.T) {
	ctrl := NewController(&mockService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/tables-sessions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	ctrl.HandleOpenSession(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "table_id", resp.Issues[0].Field)
	assert.Equal(t, "table_id is required", resp.Issues[0].Message)
}

func TestHandleOpenSession_Conflict(t *testing.T) {
	ctrl := NewController(&mockService{
		OpenFunc: func(ctx context.Context, tableID int) error {
			return apperrors.NewConflictError("table already in use")
		},
	}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/tables-sessions", strings.NewReader(`{"table_id":5}`))
	rec := httptest.NewRecorder()

	ctrl.HandleOpenSession(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "table already in use", resp.Message)
}

func closeRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/tables-sessions/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleCloseSession_Success(t *testing.T) {
	var gotID int
	ctrl := NewController(&mockService{
		CloseFunc: func(ctx context.Context, sessionID int) error {
			gotID = sessionID
			return nil
		},
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.HandleCloseSession(rec, closeRequest("12"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, gotID)
}

func TestHandleCloseSession_InvalidID(t *testing.T) {
	ctrl := NewController(&mockService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.HandleCloseSession(rec, closeRequest("abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCloseSession_NotFound(t *testing.T) {
	ctrl := NewController(&mockService{
		CloseFunc: func(ctx context.Context, sessionID int) error {
			return apperrors.NewNotFoundError("session with id 9 not found")
		},
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.HandleCloseSession(rec, closeRequest("9"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListSessions_Success(t *testing.T) {
	closedAt := time.Now().UTC().Truncate(time.Second)
	ctrl := NewController(&mockService{
		ListFunc: func(ctx context.Context) ([]domain.TableSession, error) {
			return []domain.TableSession{
				{ID: 2, TableID: 5, OpenedAt: closedAt.Add(time.Hour)},
				{ID: 1, TableID: 3, OpenedAt: closedAt.Add(-time.Hour), ClosedAt: &closedAt},
			}, nil
		},
	}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/tables-sessions", nil)
	rec := httptest.NewRecorder()

	ctrl.HandleListSessions(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var out []dto.SessionDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].ID)
	assert.Nil(t, out[0].ClosedAt)
	assert.NotNil(t, out[1].ClosedAt)
}

func TestHandleListSessions_EmptyIsArray(t *testing.T) {
	ctrl := NewController(&mockService{
		ListFunc: func(ctx context.Context) ([]domain.TableSession, error) {
			return nil, nil
		},
	}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/tables-sessions", nil)
	rec := httptest.NewRecorder()

	ctrl.HandleListSessions(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
