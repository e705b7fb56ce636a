package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("resource conflict")
	ErrDuplicateRequest    = errors.New("duplicate client request")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientSamples = errors.New("insufficient samples for baseline calculation")

	// ErrComputation is reserved for stress scoring failures. No current code
	// path produces it; handlers still map it so future input validation can
	// surface through the same channel.
	ErrComputation = errors.New("stress computation failed")
)
