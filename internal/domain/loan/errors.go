package loan

import "errors"

var (
	// ErrNotFound covers both a missing loan and a loan owned by someone
	// else; the two are indistinguishable to the caller.
	ErrNotFound = errors.New("loan not found")

	ErrBlankBorrowerName = errors.New("borrower name is required")
	ErrInvalidPrincipal  = errors.New("principal must be greater than 0")
	ErrInvalidRate       = errors.New("interest rate must be between 0 and 100")
	ErrMissingLendDate   = errors.New("lend date is required")
	ErrUnknownFrequency  = errors.New("unknown interest frequency")
	ErrUnknownStatus     = errors.New("unknown loan status")
)
