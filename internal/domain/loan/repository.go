package loan

import "context"

// Repository is the owner-scoped loan store. Every read takes the owner id
// explicitly; a loan that exists but belongs to another owner behaves exactly
// like a missing one.
type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, ownerID, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the enclosing transaction.
	GetByLoanIDForUpdate(ctx context.Context, ownerID, loanID string) (*Loan, error)
	// ListByOwner returns the owner's loans ordered by creation time descending.
	ListByOwner(ctx context.Context, ownerID string) ([]*Loan, error)
	// ListAll returns every loan across all owners; only admin statistics use it.
	ListAll(ctx context.Context) ([]*Loan, error)
	Save(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, l *Loan) error
	CountByOwnerAndStatus(ctx context.Context, ownerID string, s Status) (int64, error)
	CountByOwnerAndFrequency(ctx context.Context, ownerID string, f Frequency) (int64, error)
}
