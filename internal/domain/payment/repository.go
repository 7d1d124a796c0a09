package payment

import (
	"context"
	"errors"
)

var (
	ErrInvalidAmount = errors.New("payment amount must be greater than 0")
	ErrUnknownType   = errors.New("unknown payment type")
)

// Repository persists repayment events. There is no update or single-row
// delete: payments are immutable and removed only via DeleteByLoan when the
// owning loan goes away.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	// ListByLoan returns payments ordered by payment date descending,
	// creation time descending as tiebreak.
	ListByLoan(ctx context.Context, loanID uint64) ([]*Payment, error)
	DeleteByLoan(ctx context.Context, loanID uint64) error
}
