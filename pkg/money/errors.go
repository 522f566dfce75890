package money

import "errors"

// Common money package errors
var (
	// ErrInvalidAmount is returned when a string cannot be parsed as a decimal amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTooManyDecimals is returned when an amount carries more precision than Scale
	ErrTooManyDecimals = errors.New("amount has more than 2 decimal places")

	// ErrOutOfRange is returned when an amount does not fit in int64 minor units
	ErrOutOfRange = errors.New("amount out of range")
)
