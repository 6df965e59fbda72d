package ledger

import "errors"

var (
	// ErrMalformedLedger is returned when the ledger CSV cannot be parsed.
	ErrMalformedLedger = errors.New("malformed ledger")
	// ErrMarkersNotFound is returned when a document lacks the table markers.
	ErrMarkersNotFound = errors.New("table markers not found")
	// ErrColumnMismatch is returned when a row's values do not match its columns.
	ErrColumnMismatch = errors.New("column and value counts differ")
)
