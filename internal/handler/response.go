package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/seyram-dev/pos-backoffice/internal/domain"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError, details any) {
	RespondJSON(w, appErr.Status, APIResponse{
		Success: false,
		Data:    nil,
		Error: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		},
	})
}

func RespondValidationError(w http.ResponseWriter, fields []FieldError) {
	RespondAppError(w, ErrValidationFailed, fields)
}

// RespondDomainError maps domain sentinels onto the HTTP error table.
// Store-level failures keep their original message in the details so the
// caller sees the verbatim reason.
func RespondDomainError(w http.ResponseWriter, err error) {
	var appErr *AppError
	var details any

	switch {
	case errors.Is(err, domain.ErrNotFound):
		appErr = ErrResourceNotFound
	case errors.Is(err, domain.ErrBelowFloor):
		appErr = ErrBelowFloor
	case errors.Is(err, domain.ErrExceedsGrossTotal):
		appErr = ErrExceedsGrossTotal
	case errors.Is(err, domain.ErrExceedsNetAmount):
		appErr = ErrExceedsNetAmount
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidField):
		appErr = ErrInvalidAmount
	case errors.Is(err, domain.ErrDataUnavailable):
		appErr = ErrDataUnavailable
		details = err.Error()
	case errors.Is(err, domain.ErrWriteFailed):
		appErr = ErrWriteFailed
		details = err.Error()
	case errors.Is(err, domain.ErrOperatorSuspended):
		appErr = ErrOperatorSuspended
	default:
		slog.Error("unhandled domain error", "error", err)
		appErr = ErrInternalError
	}

	RespondAppError(w, appErr, details)
}
