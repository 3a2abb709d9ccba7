// Package ledger implements the wallet's account model: transactions,
// recurring transactions and their catch-up, balances and overdraft policy,
// and the line-oriented text format accounts are stored in.
package ledger

import "errors"

var (
	// ErrMalformedRecord is returned when a header or transaction line has too few fields.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInvalidDate is returned when a transaction date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidAmount is returned when a transaction amount cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidIntervalCode is returned for an unknown interval code.
	ErrInvalidIntervalCode = errors.New("invalid interval code")

	// ErrOverdrawDenied is returned when an expense would overdraw an account
	// that does not allow it. The ledger is left untouched.
	ErrOverdrawDenied = errors.New("overdraw denied")

	// ErrStorageFailure wraps I/O errors from reading or writing account data.
	ErrStorageFailure = errors.New("storage failure")
)
