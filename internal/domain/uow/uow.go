package uow

import (
	"context"

	"lendtracker/internal/domain/loan"
	"lendtracker/internal/domain/payment"
	"lendtracker/internal/domain/user"
)

type Repos struct {
	Loans    loan.Repository
	Payments payment.Repository
	Users    user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the owner's loan row first, then pass it in. This is
	// what serializes concurrent payments against the same loan.
	WithinLoanTx(ctx context.Context, ownerID, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
