package loanmock

import (
	"context"
	"errors"

	domain "lendtracker/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository. Fill in
// the function fields a test needs; unfilled ones fail loudly.
type Repo struct {
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn              func(ctx context.Context, ownerID, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn     func(ctx context.Context, ownerID, loanID string) (*domain.Loan, error)
	ListByOwnerFn              func(ctx context.Context, ownerID string) ([]*domain.Loan, error)
	ListAllFn                  func(ctx context.Context) ([]*domain.Loan, error)
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
	DeleteFn                   func(ctx context.Context, l *domain.Loan) error
	CountByOwnerAndStatusFn    func(ctx context.Context, ownerID string, s domain.Status) (int64, error)
	CountByOwnerAndFrequencyFn func(ctx context.Context, ownerID string, f domain.Frequency) (int64, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, ownerID, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, ownerID, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, ownerID, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, ownerID, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Loan, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListAll(ctx context.Context) ([]*domain.Loan, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, l *domain.Loan) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, l)
	}
	return nil
}

func (m *Repo) CountByOwnerAndStatus(ctx context.Context, ownerID string, s domain.Status) (int64, error) {
	if m.CountByOwnerAndStatusFn != nil {
		return m.CountByOwnerAndStatusFn(ctx, ownerID, s)
	}
	return 0, errUnimplemented
}

func (m *Repo) CountByOwnerAndFrequency(ctx context.Context, ownerID string, f domain.Frequency) (int64, error) {
	if m.CountByOwnerAndFrequencyFn != nil {
		return m.CountByOwnerAndFrequencyFn(ctx, ownerID, f)
	}
	return 0, errUnimplemented
}
