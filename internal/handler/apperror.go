package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrBelowFloor        = &AppError{http.StatusUnprocessableEntity, "PAYMENT_BELOW_FLOOR", "Payment cannot be reduced below its value at session start"}
	ErrExceedsGrossTotal = &AppError{http.StatusUnprocessableEntity, "EXCEEDS_GROSS_TOTAL", "Total payment exceeds invoice gross total"}
	ErrExceedsNetAmount  = &AppError{http.StatusUnprocessableEntity, "EXCEEDS_NET_AMOUNT", "Total payment exceeds invoice net amount"}
	ErrInvalidAmount     = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must not be negative"}
	ErrDataUnavailable   = &AppError{http.StatusBadGateway, "DATA_UNAVAILABLE", "Required data could not be fetched"}
	ErrWriteFailed       = &AppError{http.StatusBadGateway, "WRITE_FAILED", "Store write failed"}
	ErrOperatorSuspended = &AppError{http.StatusForbidden, "OPERATOR_SUSPENDED", "Operator is suspended"}
)
