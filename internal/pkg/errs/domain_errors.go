package errs

import "errors"

// Sentinel errors shared by the command and query sides
var (
	// Catalog errors
	ErrItemNotFound = errors.New("item not found")

	// Rental errors
	ErrRentalNotFound = errors.New("rental not found")
	ErrStaleRental    = errors.New("rental was modified concurrently")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
