package paymentmock

import (
	"context"
	"errors"

	domain "lendtracker/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("paymentmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, p *domain.Payment) error
	ListByLoanFn   func(ctx context.Context, loanID uint64) ([]*domain.Payment, error)
	DeleteByLoanFn func(ctx context.Context, loanID uint64) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]*domain.Payment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) DeleteByLoan(ctx context.Context, loanID uint64) error {
	if m.DeleteByLoanFn != nil {
		return m.DeleteByLoanFn(ctx, loanID)
	}
	return nil
}
