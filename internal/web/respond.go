// Package web translates domain and validation failures into HTTP
// responses. Controllers hand every error to WriteError; the mapping to
// status codes and the error body shape live here only.
package web

import (
	"encoding/json"
	"net/http"

	apperrors "comanda/internal/errors"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Status  string                       `json:"status"`
	Message string                       `json:"message"`
	Issues  []apperrors.ValidationDetail `json:"issues,omitempty"`
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps an error to its HTTP status per the taxonomy:
// validation 400 (with issues), not-found 404, invalid-state 400,
// conflict 409, everything else 500 with a generic message. The cause
// of a 500 is logged, never returned to the caller.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteJSON(w, logger, http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: ve.Message,
			Issues:  ve.Details,
		})
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		WriteJSON(w, logger, http.StatusNotFound, ErrorResponse{
			Status:  "error",
			Message: nfe.Message,
		})
		return
	}

	if ise, ok := apperrors.IsInvalidStateError(err); ok {
		WriteJSON(w, logger, http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: ise.Message,
		})
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		WriteJSON(w, logger, http.StatusConflict, ErrorResponse{
			Status:  "error",
			Message: ce.Message,
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	WriteJSON(w, logger, http.StatusInternalServerError, ErrorResponse{
		Status:  "error",
		Message: "an unexpected error occurred",
	})
}
