package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrInvalidField      = errors.New("unknown payment field")
	ErrBelowFloor        = errors.New("payment cannot be reduced below its value at session start")
	ErrExceedsGrossTotal = errors.New("total payment exceeds invoice gross total")
	ErrExceedsNetAmount  = errors.New("total payment exceeds invoice net amount")
	ErrDataUnavailable   = errors.New("required data could not be fetched")
	ErrWriteFailed       = errors.New("store write failed")
	ErrOperatorSuspended = errors.New("operator suspended")
)
