package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrStorageFailure is returned when the underlying store fails a read or write
	ErrStorageFailure = errors.New("storage failure")
	// ErrUserUnauthorized is returned when credentials or tokens do not identify a user
	ErrUserUnauthorized = errors.New("user unauthorized")
	// ErrInvalidInput is returned when a request field fails validation
	ErrInvalidInput = errors.New("invalid input")
)

// Ledger errors
var (
	// ErrInvalidAmount is returned when a transaction amount is not strictly positive,
	// carries more than two decimal places, or would overflow a stored figure.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidKind is returned for an unknown account, category or transaction kind.
	ErrInvalidKind = errors.New("invalid kind")
	// ErrInvalidTransfer is returned when a transfer moves money to its own source.
	ErrInvalidTransfer = errors.New("transfer source and destination must differ")
	// ErrAccountNotFound is returned when a referenced account does not exist for the owner.
	ErrAccountNotFound = errors.New("account not found")
	// ErrCategoryNotFound is returned when a referenced category does not exist for the owner.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrTransactionNotFound is returned when a transaction does not exist for the owner.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrAccountHasTransactions is returned when deleting an account still referenced by transactions.
	ErrAccountHasTransactions = errors.New("cannot delete account with existing transactions")
	// ErrCategoryHasTransactions is returned when deleting a category still referenced by transactions.
	ErrCategoryHasTransactions = errors.New("cannot delete category with existing transactions")
)

// ErrStockNotFound is returned when a holding does not exist for the owner.
var ErrStockNotFound = errors.New("stock holding not found")

// ErrInvalidZakatInput is returned when a zakat input figure is negative or the nisab basis is unknown.
var ErrInvalidZakatInput = errors.New("invalid zakat input")
