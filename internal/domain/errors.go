package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDateRange  = errors.New("check-out must be after check-in")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrNotConnected      = errors.New("wallet not connected")
)
