package domain

import "errors"

// Sentinel errors shared by the repository and the HTTP layer. The HTTP
// layer maps them to status codes; anything else is an internal error.
var (
	// ErrNotFound means a valid filter combination matched zero rows.
	ErrNotFound = errors.New("no transactions found")

	// ErrInvalidRange means data_fim precedes data_inicio.
	ErrInvalidRange = errors.New("data_fim must be greater than or equal to data_inicio")

	// ErrOutOfWindow means a date bound falls outside the supported window.
	ErrOutOfWindow = errors.New("date outside supported window")

	// ErrInvalidParam covers malformed or out-of-range request parameters.
	ErrInvalidParam = errors.New("invalid parameter")
)
